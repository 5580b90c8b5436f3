// Package api provides HTTP API handlers for the Natya pose scoring service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/natya/internal/pose"
	"github.com/ayusman/natya/internal/store"
)

// ReferenceHandler handles HTTP requests for reference sequence resources.
type ReferenceHandler struct {
	store *store.Store
}

// NewReferenceHandler creates a new ReferenceHandler with the given store.
func NewReferenceHandler(s *store.Store) *ReferenceHandler {
	return &ReferenceHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ReferenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/references or /api/references/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/references")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/references
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/references/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createReferenceRequest struct {
	Name   string       `json:"name"`
	Rate   int          `json:"rate"`
	Frames []pose.Frame `json:"frames"`
}

type referenceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Rate      int    `json:"rate"`
	Frames    int    `json:"frames"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listReferencesResponse struct {
	References []referenceResponse `json:"references"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Reference to a referenceResponse.
func toResponse(ref *store.Reference) referenceResponse {
	return referenceResponse{
		ID:        ref.ID,
		Name:      ref.Name,
		Rate:      ref.Rate,
		Frames:    ref.Frames,
		CreatedAt: ref.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: ref.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/references and returns all references.
func (h *ReferenceHandler) list(w http.ResponseWriter, r *http.Request) {
	references, err := h.store.References().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list references")
		return
	}

	response := listReferencesResponse{
		References: make([]referenceResponse, 0, len(references)),
	}

	for _, ref := range references {
		response.References = append(response.References, toResponse(ref))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/references/{id} and returns a single reference.
func (h *ReferenceHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	reference, err := h.store.References().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Reference not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get reference")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(reference))
}

// create handles POST /api/references and ingests a new reference sequence.
// Frames are normalized with one bounding box across the whole sequence
// before storage, so the stored reference shares a consistent scale.
func (h *ReferenceHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if len(req.Frames) == 0 {
		writeError(w, http.StatusBadRequest, "At least one frame is required")
		return
	}

	rate := req.Rate
	if rate == 0 {
		rate = pose.DefaultReferenceRate
	}
	if rate < 0 {
		writeError(w, http.StatusBadRequest, "Rate must be positive")
		return
	}

	reference := &store.Reference{
		ID:   uuid.New().String(),
		Name: req.Name,
		Rate: rate,
	}

	normalized := pose.NormalizeSequence(req.Frames)

	if err := h.store.References().Create(reference, normalized); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create reference")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(reference))
}

// delete handles DELETE /api/references/{id} and removes a reference.
func (h *ReferenceHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.References().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Reference not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete reference")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
