package handler

import (
	"net/http"
	"strconv"
	"strings"

	"ecotrivia/backend/internal/auth"
	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

// region --- DTOs ---

type RoomInput struct {
	Name       string `json:"name" binding:"required"`
	MaxPlayers int    `json:"maxPlayers" binding:"required,min=1"`
	IsPrivate  bool   `json:"isPrivate"`
}

type AnswerInput struct {
	AnswerIndex *int `json:"answerIndex" binding:"required,min=-1"`
	TimeSpent   int  `json:"timeSpent"`
}

// endregion

// ListRooms godoc
// @Summary      List rooms
// @Description  Gets a paginated list of the known rooms. Private rooms are hidden unless requested.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        private query bool false "Include private rooms"
// @Param        page    query int  false "Page number" default(1)
// @Param        limit   query int  false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[models.GameRoom]
// @Router       /rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	withPrivate, _ := strconv.ParseBool(c.DefaultQuery("private", "false"))

	rooms := auth.Session(c).Store.Rooms()
	visible := rooms[:0]
	for _, r := range rooms {
		if !r.IsPrivate || withPrivate {
			visible = append(visible, r)
		}
	}

	c.JSON(http.StatusOK, Paginate(visible, page, limit))
}

// CreateRoom godoc
// @Summary      Create a new room
// @Description  Creates a new room, making the creator the host.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RoomInput true "Room Info"
// @Success      201  {object}  models.GameRoom
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "User is already in a room"
// @Router       /rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var input RoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := auth.Session(c).Store.Create(c.Request.Context(), input.Name, input.MaxPlayers, input.IsPrivate)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// JoinRoom godoc
// @Summary      Join a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200  {object}  models.GameRoom
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Room is full or user is in another room"
// @Router       /rooms/{id}/join [post]
func (h *Handler) JoinRoom(c *gin.Context) {
	joined, err := auth.Session(c).Store.Join(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, joined)
}

// LeaveRoom godoc
// @Summary      Leave the current room
// @Tags         rooms
// @Security     BearerAuth
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Router       /rooms/leave [post]
func (h *Handler) LeaveRoom(c *gin.Context) {
	if err := auth.Session(c).Store.Leave(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StartGame godoc
// @Summary      Start the game
// @Description  Fixes the question sequence from the session settings and shows the first question. Host only.
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  room.Snapshot
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /rooms/start [post]
func (h *Handler) StartGame(c *gin.Context) {
	store := auth.Session(c).Store
	if err := store.Start(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, store.Snapshot())
}

// SubmitAnswer godoc
// @Summary      Answer the current question
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AnswerInput true "Answer"
// @Success      200  {object}  models.PlayerAnswer
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already answered or question moved on"
// @Router       /rooms/answer [post]
func (h *Handler) SubmitAnswer(c *gin.Context) {
	var input AnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := auth.Session(c).Store.SubmitAnswer(c.Request.Context(), *input.AnswerIndex, input.TimeSpent)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// NextQuestion godoc
// @Summary      Advance to the next question
// @Description  Finishes the game after the configured number of questions.
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  room.Snapshot
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /rooms/next [post]
func (h *Handler) NextQuestion(c *gin.Context) {
	store := auth.Session(c).Store
	if err := store.NextQuestion(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, store.Snapshot())
}

// EndGame godoc
// @Summary      End the game
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  room.Snapshot
// @Failure      400  {object}  ErrorResponse
// @Router       /rooms/end [post]
func (h *Handler) EndGame(c *gin.Context) {
	store := auth.Session(c).Store
	if err := store.EndGame(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, store.Snapshot())
}

// RoomQR godoc
// @Summary      Invite QR code
// @Description  PNG QR code encoding the join URL of a room.
// @Tags         rooms
// @Produce      png
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /rooms/{id}/qr [get]
func (h *Handler) RoomQR(c *gin.Context) {
	id := c.Param("id")
	if !hasRoom(auth.Session(c).Store.Rooms(), id) {
		h.fail(c, room.ErrRoomNotFound)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	url := scheme + "://" + c.Request.Host + strings.TrimSuffix(c.Request.URL.Path, "/qr") + "/join"

	const qrSize = 320
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func hasRoom(rooms []models.GameRoom, id string) bool {
	for _, r := range rooms {
		if r.ID == id {
			return true
		}
	}
	return false
}
