package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"ecotrivia/backend/internal/auth"
	"ecotrivia/backend/internal/hub"
	"ecotrivia/backend/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// subscribe registers an inbox for a session's snapshots. The returned
// function unsubscribes and closes the inbox.
func (h *Handler) subscribe(s *session.Session) (hub.Client, func()) {
	inbox := make(hub.Client, 16)
	topic := session.Topic(s.ID)
	h.sessions.Hub().Subscribe(topic, inbox)
	return inbox, func() { h.sessions.Hub().Unsubscribe(topic, inbox) }
}

// Events godoc
// @Summary      Stream state changes
// @Description  Server-sent events; each "snapshot" event carries the full client state.
// @Tags         events
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        token query string false "Session token, for clients that cannot set headers"
// @Success      200
// @Router       /events [get]
func (h *Handler) Events(c *gin.Context) {
	s := auth.Session(c)
	release := s.Attach()
	defer release()
	inbox, unsubscribe := h.subscribe(s)
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent(session.EventSnapshot, s.Store.Snapshot())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-inbox:
			if !ok {
				return false
			}
			var event struct {
				Type    string          `json:"type"`
				Payload json.RawMessage `json:"payload"`
			}
			if err := json.Unmarshal(msg, &event); err != nil {
				h.log.Warn("dropping malformed event", "session", s.ID, "err", err)
				return true
			}
			c.SSEvent(event.Type, event.Payload)
			return true
		}
	})
}

// EventsWS godoc
// @Summary      Stream state changes over a websocket
// @Description  Each message is a JSON event {"type":"snapshot","payload":{...}}.
// @Tags         events
// @Security     BearerAuth
// @Param        token query string false "Session token, for clients that cannot set headers"
// @Success      101
// @Router       /events/ws [get]
func (h *Handler) EventsWS(c *gin.Context) {
	s := auth.Session(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "session", s.ID, "err", err)
		return
	}
	defer conn.Close()

	release := s.Attach()
	defer release()
	inbox, unsubscribe := h.subscribe(s)
	defer unsubscribe()

	if err := conn.WriteJSON(hub.Event{Type: session.EventSnapshot, Payload: s.Store.Snapshot()}); err != nil {
		return
	}

	// The read side only detects the peer going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg, ok := <-inbox:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}
