// Package main provides the motion temporal analyzer.
// It reads a scoring request from stdin, evaluates timing consistency and
// rhythm correlation between a captured and a reference pose sequence, and
// writes one JSON result record to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// expectedCaptureFPS is the nominal device capture rate used to judge
// timing consistency.
const expectedCaptureFPS = 30.0

// Point is a landmark projected to (x, y).
type Point [2]float64

// CapturedFrame is one captured pose with its elapsed timestamp.
type CapturedFrame struct {
	Points    []Point `json:"points"`
	ElapsedMs int64   `json:"elapsed_ms"`
}

// Reference is the fixed-rate reference sequence.
type Reference struct {
	Rate   int       `json:"rate"`
	Frames [][]Point `json:"frames"`
}

// Request is the analysis input document.
type Request struct {
	Captured  []CapturedFrame `json:"captured"`
	Reference Reference       `json:"reference"`
}

// Result is the record written to stdout.
type Result struct {
	Timing   float64 `json:"timing"`
	Rhythm   float64 `json:"rhythm"`
	Feedback string  `json:"feedback"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		fmt.Fprintf(os.Stderr, "failed to decode request: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "analyzing %d captured frames against %d reference frames\n",
		len(req.Captured), len(req.Reference.Frames))

	timing := timingScore(req.Captured) * 100
	rhythm := rhythmScore(req.Captured, req.Reference.Frames) * 100

	result := Result{
		Timing:   timing,
		Rhythm:   rhythm,
		Feedback: feedback(timing, rhythm),
	}

	if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
}

// timingScore measures how consistently frames were captured against the
// nominal device rate. Returns a value in [0,1]; 0.5 is the neutral score
// when there are too few samples to judge.
func timingScore(captured []CapturedFrame) float64 {
	if len(captured) < 2 {
		return 0.5
	}

	diffs := make([]float64, 0, len(captured)-1)
	for i := 1; i < len(captured); i++ {
		diffs = append(diffs, float64(captured[i].ElapsedMs-captured[i-1].ElapsedMs)/1000.0)
	}

	expected := 1.0 / expectedCaptureFPS
	consistency := 1.0 - math.Min(popStdDev(diffs)/expected, 1.0)
	return math.Max(consistency, 0)
}

// popStdDev is the population (n-divisor) standard deviation. The sample
// form is undefined for a single interval, which is a valid input here:
// a two-frame capture must score, not produce NaN.
func popStdDev(x []float64) float64 {
	return math.Sqrt(stat.MomentAbout(2, x, stat.Mean(x, nil), nil))
}

// rhythmScore correlates the captured movement velocity profile with the
// reference's. Falls back to captured-velocity consistency when the
// reference is too short to correlate against.
func rhythmScore(captured []CapturedFrame, reference [][]Point) float64 {
	if len(captured) < 3 {
		return 0.5
	}

	userVel := make([]float64, 0, len(captured)-1)
	for i := 1; i < len(captured); i++ {
		userVel = append(userVel, frameVelocity(captured[i-1].Points, captured[i].Points))
	}

	if len(reference) >= 2 {
		refVel := make([]float64, 0, len(reference)-1)
		for i := 1; i < len(reference) && len(refVel) < len(userVel); i++ {
			refVel = append(refVel, frameVelocity(reference[i-1], reference[i]))
		}

		if len(userVel) >= 3 && len(refVel) >= 3 {
			n := len(userVel)
			if len(refVel) < n {
				n = len(refVel)
			}
			u, v := userVel[:n], refVel[:n]

			if popStdDev(u) > 0 && popStdDev(v) > 0 {
				correlation := stat.Correlation(u, v, nil)
				if math.IsNaN(correlation) {
					return 0.5
				}
				return math.Min(math.Max(correlation, 0), 1)
			}
		}
	}

	// Fallback: reward consistent movement speed.
	if len(userVel) >= 2 {
		consistency := 1.0 - math.Min(popStdDev(userVel)/(stat.Mean(userVel, nil)+1e-6), 1.0)
		return math.Max(consistency, 0)
	}

	return 0.5
}

// frameVelocity is the Euclidean norm of the displacement between two
// frames, truncated to the shorter landmark list.
func frameVelocity(a, b []Point) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float64
	for i := 0; i < n; i++ {
		dx := b[i][0] - a[i][0]
		dy := b[i][1] - a[i][1]
		sum += dx*dx + dy*dy
	}
	return math.Sqrt(sum)
}

// feedback generates performance feedback from the temporal sub-scores.
func feedback(timing, rhythm float64) string {
	average := (timing + rhythm) / 2

	switch {
	case average >= 90:
		return "Outstanding performance! Perfect execution!"
	case average >= 80:
		return "Excellent dancing! Great job!"
	case average >= 70:
		return "Good performance! Keep practicing!"
	case average >= 60:
		return "Nice effort! Focus on improvement areas below."
	}

	var parts []string
	if timing < 60 {
		parts = append(parts, "work on timing consistency")
	}
	if rhythm < 60 {
		parts = append(parts, "focus on rhythm and flow")
	}

	if len(parts) > 0 {
		return "Try to " + strings.Join(parts, " and ") + "."
	}
	return "Keep practicing to improve your performance!"
}
