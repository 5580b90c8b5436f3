// Package score computes performance scores from captured and reference pose sequences.
package score

import "math"

// AlignIndex maps a captured frame's elapsed time to the nearest index in a
// reference sequence sampled at rate frames per second.
func AlignIndex(elapsedMs int64, rate int) int {
	return int(math.Round(float64(elapsedMs) * float64(rate) / 1000.0))
}

// inBounds reports whether an aligned index falls inside the reference
// sequence. Out-of-bounds frames are skipped, never clamped.
func inBounds(index, numFrames int) bool {
	return index >= 0 && index < numFrames
}
