package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ayusman/natya/internal/pose"
	"github.com/ayusman/natya/internal/score"
	"github.com/ayusman/natya/internal/store"
	"github.com/ayusman/natya/internal/temporal"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SessionHandler accumulates captured frames streamed over a WebSocket
// during a live performance and issues a single score request when the
// client ends the session. Scoring itself stays one-shot: nothing is scored
// until the stop event arrives.
type SessionHandler struct {
	store  *store.Store
	scorer *score.Scorer
}

// NewSessionHandler creates a new SessionHandler with the given store and scorer.
func NewSessionHandler(s *store.Store, scorer *score.Scorer) *SessionHandler {
	return &SessionHandler{store: s, scorer: scorer}
}

// sessionMessage is one client message: a captured frame or a stop event.
type sessionMessage struct {
	Event     string     `json:"event"` // "frame" or "stop"
	Landmarks pose.Frame `json:"landmarks,omitempty"`
	ElapsedMs int64      `json:"elapsed_ms,omitempty"`
}

type sessionResult struct {
	Event  string        `json:"event"` // "result" or "error"
	Result *score.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// ServeHTTP handles WebSocket upgrade requests for scoring sessions.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	referenceID := r.URL.Query().Get("reference_id")
	if referenceID == "" {
		http.Error(w, "reference_id is required", http.StatusBadRequest)
		return
	}

	reference, err := h.store.References().GetSequence(referenceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Reference not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to load reference", http.StatusInternalServerError)
		}
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	var captured pose.CapturedSequence

	for {
		var msg sessionMessage
		if err := conn.ReadJSON(&msg); err != nil {
			// Client went away mid-session; nothing to score.
			return
		}

		switch msg.Event {
		case "frame":
			if len(msg.Landmarks) == 0 {
				continue
			}
			captured = append(captured, pose.CapturedFrame{
				Landmarks: msg.Landmarks,
				ElapsedMs: msg.ElapsedMs,
			})

		case "stop":
			h.finish(r, conn, captured, reference)
			return

		default:
			conn.WriteJSON(sessionResult{Event: "error", Error: "unknown event"})
		}
	}
}

// finish scores the accumulated session and writes the single result message.
func (h *SessionHandler) finish(r *http.Request, conn *websocket.Conn, captured pose.CapturedSequence, reference pose.ReferenceSequence) {
	if len(captured) == 0 {
		conn.WriteJSON(sessionResult{Event: "error", Error: "no frames captured"})
		return
	}

	result, err := h.scorer.Score(r.Context(), captured, reference)
	if err != nil {
		switch {
		case errors.Is(err, score.ErrNoAlignment):
			conn.WriteJSON(sessionResult{Event: "error", Error: "no captured frames align with the reference"})
		case errors.Is(err, temporal.ErrTimeout):
			conn.WriteJSON(sessionResult{Event: "error", Error: "temporal analysis timed out"})
		default:
			log.Printf("session scoring failed: %v", err)
			conn.WriteJSON(sessionResult{Event: "error", Error: "failed to score performance"})
		}
		return
	}

	conn.WriteJSON(sessionResult{Event: "result", Result: &result})
}
