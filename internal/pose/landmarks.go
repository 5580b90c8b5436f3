// Package pose provides body landmark types and normalization for performance scoring.
package pose

// Body landmark indices following the MediaPipe 33-point pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// DefaultReferenceRate is the fixed sampling rate of reference sequences,
// in frames per second. It must match the rate used by the upstream
// reference-extraction pipeline; changing one without the other
// desynchronizes every frame lookup.
const DefaultReferenceRate = 60

// Landmark is a single tracked body point. X and Y are coordinates in an
// arbitrary 2-D space (source resolution or already normalized), Z is
// informational depth, and Visibility is a detector confidence in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Frame is the full set of landmarks detected at one instant. Landmarks are
// positionally indexed; index meaning is defined by the upstream detector and
// must be preserved, never reordered, across the pipeline.
type Frame []Landmark

// CapturedFrame pairs a frame with its elapsed time since the performance
// began, in milliseconds. Capture rate is variable and device-dependent.
type CapturedFrame struct {
	Landmarks Frame `json:"landmarks"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

// CapturedSequence is the ordered series of frames recorded during one
// performance. Immutable once submitted for scoring.
type CapturedSequence []CapturedFrame

// ReferenceSequence is a pose sequence sampled at a fixed, known rate,
// produced once per reference video.
type ReferenceSequence struct {
	Rate   int     `json:"rate"`
	Frames []Frame `json:"frames"`
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	copy(out, f)
	return out
}
