package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ecotrivia/backend/internal/auth"
	"ecotrivia/backend/internal/presence"
	"ecotrivia/backend/internal/room"
	"ecotrivia/backend/internal/session"

	"github.com/gin-gonic/gin"
)

// ErrorResponse defines the structure for an error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// Handler serves the game API on top of the session manager.
type Handler struct {
	sessions *session.Manager
	presence *presence.Tracker
	secret   string
	tokenTTL time.Duration
	log      *slog.Logger
}

// New creates a Handler. Tokens are signed with secret and live for tokenTTL.
func New(sessions *session.Manager, tracker *presence.Tracker, secret string, tokenTTL time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		sessions: sessions,
		presence: tracker,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      logger,
	}
}

// Register mounts the API routes on api, normally the /api/v1 group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/session", h.CreateSession)
	api.GET("/categories", h.GetCategories)

	authed := api.Group("")
	authed.Use(auth.SessionMiddleware(h.secret, h.sessions))
	{
		authed.DELETE("/session", h.DeleteSession)
		authed.GET("/state", h.GetState)
		authed.PUT("/settings", h.UpdateSettings)
		authed.GET("/online", h.GetOnline)

		rooms := authed.Group("/rooms")
		{
			rooms.GET("", h.ListRooms)
			rooms.POST("", h.CreateRoom)
			rooms.POST("/:id/join", h.JoinRoom)
			rooms.GET("/:id/qr", h.RoomQR)
			rooms.POST("/leave", h.LeaveRoom) // No ID needed, user leaves their own room
			rooms.POST("/start", h.StartGame)
			rooms.POST("/answer", h.SubmitAnswer)
			rooms.POST("/next", h.NextQuestion)
			rooms.POST("/end", h.EndGame)
		}

		authed.GET("/events", h.Events)
		authed.GET("/events/ws", h.EventsWS)
	}
}

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrConflict),
		errors.Is(err, room.ErrAlreadyAnswered),
		errors.Is(err, room.ErrAlreadyInRoom):
		return http.StatusConflict
	case errors.Is(err, room.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, room.ErrNoCurrentUser),
		errors.Is(err, room.ErrNotInRoom),
		errors.Is(err, room.ErrInvalidState),
		errors.Is(err, room.ErrInvalidRoom),
		errors.Is(err, room.ErrInvalidSettings),
		errors.Is(err, room.ErrNoQuestions),
		errors.Is(err, room.ErrNoQuestion):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
