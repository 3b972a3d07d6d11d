package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/service"
	ws "github.com/portfolio-site/backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// ResultSubscriber opens a live feed of newly stored results for one exam.
type ResultSubscriber interface {
	Subscribe(ctx context.Context, examID string) *redis.PubSub
}

// WSHandler streams exam results to admins as they are submitted.
type WSHandler struct {
	examService *service.ExamService
	subscriber  ResultSubscriber
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(examService *service.ExamService, subscriber ResultSubscriber, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		examService: examService,
		subscriber:  subscriber,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// ResultsStream godoc
// WS /ws/v1/admin/exams/:id/results
// Sends the retained history once, then every new result as it is stored.
func (h *WSHandler) ResultsStream(c *gin.Context) {
	examID := c.Param("id")

	// Resolve the exam before upgrading so a missing exam is a plain 404.
	if _, err := h.examService.Results(c.Request.Context(), examID); err != nil {
		failWith(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("exam_id", examID).Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := h.subscriber.Subscribe(ctx, examID)
	defer sub.Close()

	// The snapshot is read only once the subscription is confirmed, so every
	// result is in the snapshot, the feed, or both.
	if _, err := sub.Receive(ctx); err != nil {
		wsLog.Error().Err(err).Msg("Subscribe failed")
		_ = ws.WriteError(conn, "live feed unavailable")
		return
	}

	results, err := h.examService.Results(ctx, examID)
	if err != nil {
		wsLog.Error().Err(err).Msg("Snapshot failed")
		_ = ws.WriteError(conn, "results unavailable")
		return
	}
	if results == nil {
		results = []model.ExamResult{}
	}
	if err := ws.WriteTyped(conn, ws.SnapshotResponse{Event: ws.EventSnapshot, ExamID: examID, Results: results}); err != nil {
		return
	}
	wsLog.Info().Msg("Admin connected to results stream")

	pings := make(chan ws.Action, 1)
	closed := make(chan struct{})
	go h.readLoop(conn, wsLog, pings, closed)

	feed := sub.Channel()
	for {
		select {
		case <-closed:
			return
		case action := <-pings:
			if action == ws.ActionPing {
				err = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			} else {
				err = ws.WriteError(conn, "unknown action: "+string(action))
			}
			if err != nil {
				return
			}
		case msg, ok := <-feed:
			if !ok {
				return
			}
			var result model.ExamResult
			if err := json.Unmarshal([]byte(msg.Payload), &result); err != nil {
				wsLog.Warn().Err(err).Msg("Dropping malformed result message")
				continue
			}
			if err := ws.WriteTyped(conn, ws.ResultResponse{Event: ws.EventResult, Result: result}); err != nil {
				return
			}
		}
	}
}

// readLoop forwards client actions to the writer loop and closes done when
// the connection goes away. It never writes to conn.
func (h *WSHandler) readLoop(conn *websocket.Conn, wsLog zerolog.Logger, actions chan<- ws.Action, done chan<- struct{}) {
	defer close(done)

	for {
		var msg ws.RequestEnvelope
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		select {
		case actions <- msg.Action:
		default:
		}
	}
}
