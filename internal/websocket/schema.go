package websocket

import "github.com/portfolio-site/backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only client message shape.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventSnapshot Event = "snapshot"
	EventResult   Event = "result"
	EventPong     Event = "pong"
)

// SnapshotResponse is sent once on connect with the retained history.
type SnapshotResponse struct {
	Event   Event              `json:"event"`
	ExamID  string             `json:"exam_id"`
	Results []model.ExamResult `json:"results"`
}

// ResultResponse carries one newly stored result.
type ResultResponse struct {
	Event  Event            `json:"event"`
	Result model.ExamResult `json:"result"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
