// Package testdata provides pose sequence fixtures shared by integration tests.
package testdata

import (
	"math"

	"github.com/ayusman/natya/internal/pose"
)

// BodyFrame builds a full 33-landmark frame in a deterministic layout.
// phase shifts the layout so successive frames describe a moving pose.
func BodyFrame(phase float64) pose.Frame {
	frame := make(pose.Frame, pose.NumLandmarks)
	for i := range frame {
		angle := phase + float64(i)*2*math.Pi/float64(pose.NumLandmarks)
		frame[i] = pose.Landmark{
			X:          0.5 + 0.4*math.Cos(angle),
			Y:          0.5 + 0.4*math.Sin(angle),
			Z:          0.1 * math.Sin(angle),
			Visibility: 0.95,
		}
	}
	return frame
}

// Reference builds a reference sequence of numFrames frames at the
// standard rate, animated with a slow rotation.
func Reference(numFrames int) pose.ReferenceSequence {
	ref := pose.ReferenceSequence{
		Rate:   pose.DefaultReferenceRate,
		Frames: make([]pose.Frame, numFrames),
	}
	for i := range ref.Frames {
		ref.Frames[i] = BodyFrame(float64(i) * 0.02)
	}
	return ref
}

// CapturedMatching builds a captured sequence whose frames reproduce the
// reference exactly at the given capture interval, so a perfect spatial
// score is expected.
func CapturedMatching(ref pose.ReferenceSequence, numFrames int, intervalMs int64) pose.CapturedSequence {
	captured := make(pose.CapturedSequence, 0, numFrames)
	for i := 0; i < numFrames; i++ {
		elapsed := int64(i) * intervalMs
		index := int(math.Round(float64(elapsed) * float64(ref.Rate) / 1000.0))
		if index >= len(ref.Frames) {
			break
		}
		captured = append(captured, pose.CapturedFrame{
			Landmarks: ref.Frames[index].Clone(),
			ElapsedMs: elapsed,
		})
	}
	return captured
}
