package handler

import (
	"net/http"

	"ecotrivia/backend/internal/auth"
	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type SessionInput struct {
	ID             string `json:"id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Level          int    `json:"level"`
	TotalScore     int    `json:"totalScore"`
	GamesPlayed    int    `json:"gamesPlayed"`
	CorrectAnswers int    `json:"correctAnswers"`
}

type SessionResponse struct {
	Token     string      `json:"token"`
	SessionID string      `json:"sessionId"`
	User      models.User `json:"user"`
}

// endregion

// CreateSession godoc
// @Summary      Sign in
// @Description  Opens a client session for the given user and returns its token. Identity is trusted as sent.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        input body SessionInput true "User"
// @Success      201  {object}  SessionResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /session [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var input SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user := models.User{
		ID:             input.ID,
		Name:           input.Name,
		Level:          input.Level,
		TotalScore:     input.TotalScore,
		GamesPlayed:    input.GamesPlayed,
		CorrectAnswers: input.CorrectAnswers,
	}
	s, err := h.sessions.Open(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := jwt.GenerateToken(h.secret, s.ID, h.tokenTTL)
	if err != nil {
		_ = h.sessions.Close(c.Request.Context(), s.ID)
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Token: token, SessionID: s.ID, User: user})
}

// DeleteSession godoc
// @Summary      Sign out
// @Description  Logs the user out of this session. Their room membership is left to the sweep.
// @Tags         session
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Router       /session [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	s := auth.Session(c)
	if err := h.sessions.Close(c.Request.Context(), s.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
