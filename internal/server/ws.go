package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"vidbrief/internal/logger"
	"vidbrief/internal/registry"
)

// WSHandler manages notification channel connections.
type WSHandler struct {
	registry  *registry.Registry
	logger    logger.Logger
	keepalive time.Duration
	upgrader  websocket.Upgrader
}

// NewWSHandler creates a new WSHandler. allowedOrigin is the only
// browser origin accepted for the upgrade; requests without an Origin
// header (non-browser clients, tests) are accepted.
func NewWSHandler(reg *registry.Registry, log logger.Logger, allowedOrigin string, keepalive time.Duration) *WSHandler {
	return &WSHandler{
		registry:  reg,
		logger:    log,
		keepalive: keepalive,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Connect upgrades the request and registers the connection as the
// notification channel for the task id, replacing any previous viewer.
// While no progress flows, a periodic liveness message keeps the
// connection open. The handler returns when the client disconnects or a
// send fails.
// GET /ws/:task_id
func (h *WSHandler) Connect(c echo.Context) error {
	ctx := c.Request().Context()
	taskID := c.Param("task_id")

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	sender := newWSSender(conn)
	h.registry.Open(taskID, sender)
	defer h.registry.Close(taskID)

	h.logger.Info(ctx, "notification channel opened for task %s", taskID)

	// No client-to-server messages are expected; the read pump exists
	// only to observe the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.keepalive)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			h.logger.Info(ctx, "notification channel closed for task %s", taskID)
			return nil
		case <-ticker.C:
			if err := sender.Send(registry.Message{Status: "Connection active"}); err != nil {
				h.logger.Info(ctx, "liveness send failed for task %s: %v", taskID, err)
				return nil
			}
		}
	}
}

// wsSender serializes writes to one connection. The liveness ticker and
// pipeline reports send concurrently, and gorilla permits only one
// writer at a time.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSSender(conn *websocket.Conn) *wsSender {
	return &wsSender{conn: conn}
}

func (s *wsSender) Send(msg registry.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}
