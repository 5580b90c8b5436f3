// Package temporal provides the timing/rhythm analysis boundary for performance scoring.
//
// The analysis itself runs out of process so the time-series algorithms can
// evolve independently of the scoring service, and even live in a different
// runtime. The adapter exchanges structured JSON records with the process:
// the full request on stdin, one result record line on stdout.
package temporal

import (
	"github.com/ayusman/natya/internal/pose"
)

// Point is a landmark projected to its (x, y) coordinates. Depth and
// visibility are discarded before serialization.
type Point [2]float64

// CapturedFrame is one captured pose projected for analysis.
type CapturedFrame struct {
	Points    []Point `json:"points"`
	ElapsedMs int64   `json:"elapsed_ms"`
}

// Reference is the fixed-rate reference sequence projected for analysis.
type Reference struct {
	Rate   int       `json:"rate"`
	Frames [][]Point `json:"frames"`
}

// Request is the document handed to the analysis process on stdin.
type Request struct {
	Captured  []CapturedFrame `json:"captured"`
	Reference Reference       `json:"reference"`
}

// Result is the record the analysis process emits on stdout. Timing and
// Rhythm are sub-scores in [0,100]. A field missing from the record keeps
// its zero value, which is the degraded score for that component.
type Result struct {
	Timing   float64 `json:"timing"`
	Rhythm   float64 `json:"rhythm"`
	Feedback string  `json:"feedback"`
}

// NewRequest projects the two sequences into the analysis exchange format.
func NewRequest(captured pose.CapturedSequence, reference pose.ReferenceSequence) Request {
	req := Request{
		Captured: make([]CapturedFrame, len(captured)),
		Reference: Reference{
			Rate:   reference.Rate,
			Frames: make([][]Point, len(reference.Frames)),
		},
	}

	for i, cf := range captured {
		req.Captured[i] = CapturedFrame{
			Points:    projectFrame(cf.Landmarks),
			ElapsedMs: cf.ElapsedMs,
		}
	}
	for i, f := range reference.Frames {
		req.Reference.Frames[i] = projectFrame(f)
	}

	return req
}

func projectFrame(f pose.Frame) []Point {
	points := make([]Point, len(f))
	for i, l := range f {
		points[i] = Point{l.X, l.Y}
	}
	return points
}
