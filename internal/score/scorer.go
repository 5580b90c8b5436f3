package score

import (
	"context"
	"errors"
	"log"

	"github.com/ayusman/natya/internal/pose"
	"github.com/ayusman/natya/internal/temporal"
)

// Scorer evaluates one captured performance against one reference sequence.
// Scoring is single-shot: sequences in, one Result out. All intermediate
// state is request-scoped, so a Scorer is safe for concurrent use.
type Scorer struct {
	analyzer temporal.Analyzer
}

// NewScorer creates a Scorer backed by the given temporal analyzer.
func NewScorer(analyzer temporal.Analyzer) *Scorer {
	return &Scorer{analyzer: analyzer}
}

// Score runs the temporal analysis concurrently with the spatial metric and
// aggregates the sub-scores. A spatial failure (no aligned frames) fails the
// request; a temporal failure degrades to zero sub-scores and empty feedback,
// except for a timeout, which is surfaced as temporal.ErrTimeout.
func (s *Scorer) Score(ctx context.Context, captured pose.CapturedSequence, reference pose.ReferenceSequence) (Result, error) {
	type analysisOut struct {
		result temporal.Result
		err    error
	}

	analysisCh := make(chan analysisOut, 1)
	go func() {
		result, err := s.analyzer.Analyze(ctx, captured, reference)
		analysisCh <- analysisOut{result: result, err: err}
	}()

	spatial, err := Spatial(captured, reference)
	if err != nil {
		return Result{}, err
	}

	analysis := <-analysisCh
	if analysis.err != nil {
		if errors.Is(analysis.err, temporal.ErrTimeout) {
			return Result{}, analysis.err
		}
		log.Printf("temporal analysis failed, zeroing timing/rhythm: %v", analysis.err)
		analysis.result = temporal.Result{}
	}

	return Aggregate(spatial, analysis.result), nil
}
