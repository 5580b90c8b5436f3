package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/natya/internal/pose"
	"github.com/ayusman/natya/internal/score"
	"github.com/ayusman/natya/internal/store"
	"github.com/ayusman/natya/internal/temporal"
)

// ScoreHandler handles one-shot scoring requests.
type ScoreHandler struct {
	store  *store.Store
	scorer *score.Scorer
}

// NewScoreHandler creates a new ScoreHandler with the given store and scorer.
func NewScoreHandler(s *store.Store, scorer *score.Scorer) *ScoreHandler {
	return &ScoreHandler{store: s, scorer: scorer}
}

type scoreRequest struct {
	Captured    pose.CapturedSequence   `json:"captured"`
	ReferenceID string                  `json:"reference_id,omitempty"`
	Reference   *pose.ReferenceSequence `json:"reference,omitempty"`
}

// ServeHTTP implements the http.Handler interface.
// POST /api/score evaluates a captured sequence against a reference, given
// either a stored reference's ID or an inline reference sequence.
func (h *ScoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Captured) == 0 {
		writeError(w, http.StatusBadRequest, "Captured sequence must not be empty")
		return
	}

	reference, ok := h.resolveReference(w, &req)
	if !ok {
		return
	}

	result, err := h.scorer.Score(r.Context(), req.Captured, reference)
	if err != nil {
		switch {
		case errors.Is(err, score.ErrNoAlignment):
			writeError(w, http.StatusUnprocessableEntity, "No captured frames align with the reference")
		case errors.Is(err, temporal.ErrTimeout):
			writeError(w, http.StatusGatewayTimeout, "Temporal analysis timed out")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to score performance")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// resolveReference loads the stored reference or validates the inline one.
// Writes the error response itself and returns ok=false on failure.
func (h *ScoreHandler) resolveReference(w http.ResponseWriter, req *scoreRequest) (pose.ReferenceSequence, bool) {
	if req.ReferenceID != "" {
		sequence, err := h.store.References().GetSequence(req.ReferenceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Reference not found")
			} else {
				writeError(w, http.StatusInternalServerError, "Failed to load reference")
			}
			return pose.ReferenceSequence{}, false
		}
		return sequence, true
	}

	if req.Reference == nil || len(req.Reference.Frames) == 0 {
		writeError(w, http.StatusBadRequest, "Either reference_id or a non-empty reference is required")
		return pose.ReferenceSequence{}, false
	}

	reference := *req.Reference
	if reference.Rate == 0 {
		reference.Rate = pose.DefaultReferenceRate
	}
	if reference.Rate < 0 {
		writeError(w, http.StatusBadRequest, "Reference rate must be positive")
		return pose.ReferenceSequence{}, false
	}

	return reference, true
}
