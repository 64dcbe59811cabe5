package transition

import (
	"slices"

	"github.com/viewmorph/viewmorph/pkg/geom"
)

// DebugSink receives sampled curves from [Spline.DrawDebug] for diagnostic
// rendering.
type DebugSink interface {
	// Curve receives one bezier of one point's path, sampled as a
	// polyline. segment is the index within the point's path.
	Curve(pointID string, segment int, samples []geom.Vec2)
}

// debugSamples is the fixed sampling resolution DrawDebug uses per curve.
const debugSamples = 32

// DrawDebug feeds every prepared point curve through sink, sampling the
// raw bezier parameter at a fixed resolution. mapToScreen converts
// normalized positions to screen coordinates; nil passes them through.
// Points are visited in ID order so output is deterministic. Purely
// diagnostic: animation output is unaffected.
func (s *Spline) DrawDebug(sink DebugSink, mapToScreen func(geom.Vec2) geom.Vec2) error {
	if !s.ready {
		return ErrNotReady
	}
	ids := make([]string, 0, len(s.paths))
	for id := range s.paths {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		for si, seg := range s.paths[id].Segments {
			samples := make([]geom.Vec2, debugSamples+1)
			for i := range samples {
				v := seg.Curve.Eval(float64(i) / debugSamples)
				if mapToScreen != nil {
					v = mapToScreen(v)
				}
				samples[i] = v
			}
			sink.Curve(id, si, samples)
		}
	}
	return nil
}
