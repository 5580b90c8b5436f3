package score

import (
	"errors"
	"math"

	"github.com/ayusman/natya/internal/pose"
)

// ErrNoAlignment is returned when no captured frame maps to a valid
// reference index, leaving the spatial sub-score undefined.
var ErrNoAlignment = errors.New("no captured frames align with the reference sequence")

// Spatial computes the spatial sub-score for a captured sequence against a
// reference sequence. Each captured frame is aligned to its nearest reference
// frame by elapsed time; both frames are normalized independently, then the
// Euclidean distance of every landmark pair (truncated to the shorter
// landmark list) is accumulated, clamped to 1 per comparison.
//
// The sub-score is 100 − mean(distance)·100: deterministic for identical
// inputs and monotonically decreasing in average distance.
func Spatial(captured pose.CapturedSequence, reference pose.ReferenceSequence) (float64, error) {
	rate := reference.Rate
	if rate <= 0 {
		rate = pose.DefaultReferenceRate
	}

	var sum float64
	var n int

	for _, cf := range captured {
		index := AlignIndex(cf.ElapsedMs, rate)
		if !inBounds(index, len(reference.Frames)) {
			continue
		}

		normCaptured := pose.NormalizeFrame(cf.Landmarks)
		normReference := pose.NormalizeFrame(reference.Frames[index])

		count := len(normCaptured)
		if len(normReference) < count {
			count = len(normReference)
		}

		for i := 0; i < count; i++ {
			sum += landmarkDistance(normCaptured[i], normReference[i])
			n++
		}
	}

	if n == 0 {
		return 0, ErrNoAlignment
	}

	return 100 - (sum/float64(n))*100, nil
}

// landmarkDistance is the Euclidean distance between two normalized
// landmarks' (x, y) points, clamped to 1 per comparison.
func landmarkDistance(a, b pose.Landmark) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d > 1 {
		return 1
	}
	return d
}
