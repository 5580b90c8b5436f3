package score

import (
	"errors"
	"math"
	"testing"

	"github.com/ayusman/natya/internal/pose"
)

// frameOf builds a pose frame from (x, y) pairs.
func frameOf(points ...[2]float64) pose.Frame {
	f := make(pose.Frame, len(points))
	for i, p := range points {
		f[i] = pose.Landmark{X: p[0], Y: p[1]}
	}
	return f
}

// unitFrame spans [0,1] on both axes, so per-frame normalization is a no-op.
func unitFrame() pose.Frame {
	return frameOf([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1}, [2]float64{1, 1})
}

func TestSpatial_IdenticalSequences(t *testing.T) {
	// Frames at 0ms and 1000ms align to reference indices 0 and 60.
	reference := pose.ReferenceSequence{Rate: 60, Frames: make([]pose.Frame, 61)}
	for i := range reference.Frames {
		reference.Frames[i] = unitFrame()
	}

	captured := pose.CapturedSequence{
		{Landmarks: unitFrame(), ElapsedMs: 0},
		{Landmarks: unitFrame(), ElapsedMs: 1000},
	}

	got, err := Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if got != 100 {
		t.Errorf("expected spatial score 100 for identical sequences, got %f", got)
	}
}

func TestSpatial_MaximalDistance(t *testing.T) {
	// Every corresponding normalized point differs by exactly distance 1.
	capturedFrame := frameOf([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1}, [2]float64{1, 1})
	referenceFrame := frameOf([2]float64{0, 1}, [2]float64{1, 1}, [2]float64{0, 0}, [2]float64{1, 0})

	reference := pose.ReferenceSequence{Rate: 60, Frames: []pose.Frame{referenceFrame}}
	captured := pose.CapturedSequence{{Landmarks: capturedFrame, ElapsedMs: 0}}

	got, err := Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected spatial score 0 for maximal distance, got %f", got)
	}
}

func TestSpatial_ClampsDistanceAtOne(t *testing.T) {
	// Diagonal opposites are √2 apart; the clamp must report exactly 1,
	// yielding score 0 rather than a negative value.
	capturedFrame := frameOf([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{0, 1}, [2]float64{1, 0})
	referenceFrame := frameOf([2]float64{1, 1}, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1})

	reference := pose.ReferenceSequence{Rate: 60, Frames: []pose.Frame{referenceFrame}}
	captured := pose.CapturedSequence{{Landmarks: capturedFrame, ElapsedMs: 0}}

	got, err := Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected spatial score 0 with clamped distances, got %f", got)
	}
}

func TestSpatial_KnownAverageDistance(t *testing.T) {
	// Two of four landmarks displaced by 0.5 on one axis: mean distance
	// (0 + 0 + 0.5 + 0.5) / 4 = 0.25, so the score is 75.
	capturedFrame := frameOf([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{0, 0.5}, [2]float64{1, 0.5})
	referenceFrame := frameOf([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{0, 1}, [2]float64{1, 0})

	reference := pose.ReferenceSequence{Rate: 60, Frames: []pose.Frame{referenceFrame}}
	captured := pose.CapturedSequence{{Landmarks: capturedFrame, ElapsedMs: 0}}

	got, err := Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if math.Abs(got-75) > 1e-9 {
		t.Errorf("expected spatial score 75, got %f", got)
	}
}

func TestSpatial_TruncatesToShorterLandmarkList(t *testing.T) {
	// Reference frame carries two extra landmarks inside the same bounding
	// box. Only the first four pairs are compared, all at distance 0.
	capturedFrame := unitFrame()
	referenceFrame := append(unitFrame(), pose.Landmark{X: 0.5, Y: 0.5}, pose.Landmark{X: 0.2, Y: 0.8})

	reference := pose.ReferenceSequence{Rate: 60, Frames: []pose.Frame{referenceFrame}}
	captured := pose.CapturedSequence{{Landmarks: capturedFrame, ElapsedMs: 0}}

	got, err := Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if got != 100 {
		t.Errorf("expected spatial score 100 with truncation, got %f", got)
	}

	// Same comparison with the longer frame on the captured side.
	reference = pose.ReferenceSequence{Rate: 60, Frames: []pose.Frame{capturedFrame}}
	captured = pose.CapturedSequence{{Landmarks: referenceFrame, ElapsedMs: 0}}

	got, err = Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if got != 100 {
		t.Errorf("expected spatial score 100 with captured-side truncation, got %f", got)
	}
}

func TestSpatial_SkipsOutOfBoundsFrames(t *testing.T) {
	// The second captured frame maps past the end of the reference and must
	// be excluded entirely, not clamped to the last reference frame.
	reference := pose.ReferenceSequence{Rate: 60, Frames: make([]pose.Frame, 61)}
	for i := range reference.Frames {
		reference.Frames[i] = unitFrame()
	}

	farOff := frameOf([2]float64{0, 1}, [2]float64{1, 1}, [2]float64{0, 0}, [2]float64{1, 0})
	captured := pose.CapturedSequence{
		{Landmarks: unitFrame(), ElapsedMs: 1000}, // index 60, in bounds
		{Landmarks: farOff, ElapsedMs: 5000},      // index 300, skipped
	}

	got, err := Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if got != 100 {
		t.Errorf("expected spatial score 100 with out-of-bounds frame skipped, got %f", got)
	}
}

func TestSpatial_NoAlignment(t *testing.T) {
	tests := []struct {
		name      string
		captured  pose.CapturedSequence
		reference pose.ReferenceSequence
	}{
		{
			name:      "empty captured sequence",
			captured:  pose.CapturedSequence{},
			reference: pose.ReferenceSequence{Rate: 60, Frames: []pose.Frame{unitFrame()}},
		},
		{
			name: "empty reference sequence",
			captured: pose.CapturedSequence{
				{Landmarks: unitFrame(), ElapsedMs: 0},
			},
			reference: pose.ReferenceSequence{Rate: 60},
		},
		{
			name: "all captured frames past the reference",
			captured: pose.CapturedSequence{
				{Landmarks: unitFrame(), ElapsedMs: 10000},
				{Landmarks: unitFrame(), ElapsedMs: 20000},
			},
			reference: pose.ReferenceSequence{Rate: 60, Frames: []pose.Frame{unitFrame()}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Spatial(tt.captured, tt.reference)
			if !errors.Is(err, ErrNoAlignment) {
				t.Errorf("expected ErrNoAlignment, got %v", err)
			}
		})
	}
}

func TestSpatial_DegenerateFramesScorePerfect(t *testing.T) {
	// End-to-end degenerate scenario: every landmark at (0,0) on both sides.
	// Zero-extent normalization collapses both frames to neutral values, so
	// the comparison is an exact match.
	flat := frameOf([2]float64{0, 0}, [2]float64{0, 0}, [2]float64{0, 0})

	reference := pose.ReferenceSequence{Rate: 60, Frames: make([]pose.Frame, 120)}
	for i := range reference.Frames {
		reference.Frames[i] = flat.Clone()
	}

	captured := pose.CapturedSequence{
		{Landmarks: flat.Clone(), ElapsedMs: 0},
		{Landmarks: flat.Clone(), ElapsedMs: 1000},
	}

	got, err := Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if got != 100 {
		t.Errorf("expected spatial score 100 for degenerate frames, got %f", got)
	}
}

func TestSpatial_DefaultsRate(t *testing.T) {
	// A reference without an explicit rate uses the fixed default.
	reference := pose.ReferenceSequence{Frames: make([]pose.Frame, 61)}
	for i := range reference.Frames {
		reference.Frames[i] = unitFrame()
	}

	captured := pose.CapturedSequence{{Landmarks: unitFrame(), ElapsedMs: 1000}}

	got, err := Spatial(captured, reference)
	if err != nil {
		t.Fatalf("Spatial() failed: %v", err)
	}
	if got != 100 {
		t.Errorf("expected spatial score 100, got %f", got)
	}
}
