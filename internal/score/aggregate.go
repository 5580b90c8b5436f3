package score

import "github.com/ayusman/natya/internal/temporal"

// Sub-score weights. Fixed constants rather than request parameters so
// scores stay comparable across sessions.
const (
	SpatialWeight = 0.40
	TimingWeight  = 0.30
	RhythmWeight  = 0.30
)

// Result is the final scoring payload. All scores are in [0,100].
type Result struct {
	Overall  float64 `json:"overall"`
	Spatial  float64 `json:"spatial"`
	Timing   float64 `json:"timing"`
	Rhythm   float64 `json:"rhythm"`
	Feedback string  `json:"feedback"`
}

// Aggregate combines the spatial sub-score with the temporal analysis into
// the final result. Feedback passes through unmodified.
func Aggregate(spatial float64, analysis temporal.Result) Result {
	return Result{
		Overall:  spatial*SpatialWeight + analysis.Timing*TimingWeight + analysis.Rhythm*RhythmWeight,
		Spatial:  spatial,
		Timing:   analysis.Timing,
		Rhythm:   analysis.Rhythm,
		Feedback: analysis.Feedback,
	}
}
