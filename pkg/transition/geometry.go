package transition

import (
	"encoding"
	"encoding/json"
	"fmt"

	"github.com/viewmorph/viewmorph/pkg/geom"
	"github.com/viewmorph/viewmorph/pkg/tween"
)

// Wire form for prepared spline geometry. Arc-length tables are rebuilt on
// restore rather than stored: [geom.NewTable] is deterministic, so the
// restored spline evaluates to the exact same positions.
type wireGeometry struct {
	Guides []wireGuide              `json:"guides,omitempty"`
	Paths  map[string][]wireSegment `json:"paths"`
}

type wireGuide struct {
	Centroids []geom.Vec2   `json:"centroids"`
	Tangents  []geom.Vec2   `json:"tangents"`
	Bundling  [][]geom.Vec2 `json:"bundling,omitempty"`
}

type wireSegment struct {
	Curve  []geom.Vec2      `json:"curve"`
	Retime tween.RetimeInfo `json:"retime"`
}

var (
	_ encoding.BinaryMarshaler   = (*Spline)(nil)
	_ encoding.BinaryUnmarshaler = (*Spline)(nil)
)

// MarshalBinary serializes the prepared paths and guides so callers can
// cache them and skip a later Prepare. It fails with [ErrNotReady] before
// preparation has completed.
func (s *Spline) MarshalBinary() ([]byte, error) {
	if !s.ready {
		return nil, ErrNotReady
	}
	w := wireGeometry{
		Guides: make([]wireGuide, len(s.guides)),
		Paths:  make(map[string][]wireSegment, len(s.paths)),
	}
	for i, g := range s.guides {
		w.Guides[i] = wireGuide{
			Centroids: g.Centroids,
			Tangents:  g.Tangents,
			Bundling:  g.Bundling,
		}
	}
	for id, path := range s.paths {
		segs := make([]wireSegment, len(path.Segments))
		for i, seg := range path.Segments {
			segs[i] = wireSegment{Curve: seg.Curve, Retime: seg.Retime}
		}
		w.Paths[id] = segs
	}
	return json.Marshal(w)
}

// UnmarshalBinary installs previously marshaled geometry, leaving the
// spline ready without running Prepare. The receiver must be constructed
// with the same dataset, views, and parameters that produced the data;
// the engine cannot verify that, so callers keying a cache must include
// all three in the key.
func (s *Spline) UnmarshalBinary(data []byte) error {
	var w wireGeometry
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode geometry: %w", err)
	}
	if len(w.Paths) == 0 {
		return fmt.Errorf("decode geometry: no paths")
	}
	paths := make(map[string]*Path, len(w.Paths))
	for id, segs := range w.Paths {
		if len(segs) == 0 {
			return fmt.Errorf("decode geometry: point %q has no segments", id)
		}
		p := &Path{Segments: make([]*PathSegment, len(segs))}
		for i, seg := range segs {
			if len(seg.Curve) < 2 {
				return fmt.Errorf("decode geometry: point %q segment %d has %d control points", id, i, len(seg.Curve))
			}
			curve := geom.Curve(seg.Curve)
			p.Segments[i] = &PathSegment{
				Curve:  curve,
				Table:  geom.NewTable(curve),
				Retime: seg.Retime,
			}
		}
		paths[id] = p
	}
	guides := make([]PathGuide, len(w.Guides))
	for i, g := range w.Guides {
		guides[i] = PathGuide{
			Centroids: g.Centroids,
			Tangents:  g.Tangents,
			Bundling:  g.Bundling,
		}
	}
	s.paths = paths
	s.guides = guides
	s.prepErr = nil
	s.ready = true
	return nil
}
