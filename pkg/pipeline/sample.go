package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

// Position is one point's normalized screen position in a frame.
type Position struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Frame holds every point's position at one animation time.
type Frame struct {
	T         float64    `json:"t"`
	Positions []Position `json:"positions"`
}

// FrameSet is a sampled animation: frames at evenly spaced times from 0
// to 1 inclusive, points in dataset order within each frame.
type FrameSet struct {
	Frames []Frame `json:"frames"`
}

// MarshalFrames serializes a frame set for caching or API responses.
func MarshalFrames(fs *FrameSet) ([]byte, error) {
	return json.Marshal(fs)
}

// UnmarshalFrames deserializes a frame set.
func UnmarshalFrames(data []byte) (*FrameSet, error) {
	var fs FrameSet
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("decode frames: %w", err)
	}
	return &fs, nil
}

// FrameAt evaluates the prepared transition for every dataset point at
// one animation time.
func FrameAt(tr transition.Transition, ds *scatter.Dataset, t float64) (Frame, error) {
	points := ds.Points()
	frame := Frame{T: t, Positions: make([]Position, len(points))}
	for j, p := range points {
		x, err := tr.X(t, p)
		if err != nil {
			return Frame{}, err
		}
		y, err := tr.Y(t, p)
		if err != nil {
			return Frame{}, err
		}
		frame.Positions[j] = Position{ID: p.ID, X: x, Y: y}
	}
	return frame, nil
}

// Sample evaluates the prepared transition at n evenly spaced times. A
// single frame samples t=0; otherwise frame i sits at i/(n-1) so the first
// and last frames land exactly on the endpoint views.
func Sample(tr transition.Transition, ds *scatter.Dataset, n int) (*FrameSet, error) {
	fs := &FrameSet{Frames: make([]Frame, n)}
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		frame, err := FrameAt(tr, ds, t)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		fs.Frames[i] = frame
	}
	return fs, nil
}
