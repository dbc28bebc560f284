package handler

import (
	"net/http"

	"ecotrivia/backend/internal/auth"
	"ecotrivia/backend/internal/catalog"
	"ecotrivia/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GetState godoc
// @Summary      Current client state
// @Description  The session's user, settings, rooms, current room, question and answers.
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  room.Snapshot
// @Router       /state [get]
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, auth.Session(c).Store.Snapshot())
}

// UpdateSettings godoc
// @Summary      Update game settings
// @Description  Merges a partial update into the settings used by the next start.
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body models.SettingsPatch true "Settings"
// @Success      200  {object}  models.GameSettings
// @Failure      400  {object}  ErrorResponse
// @Router       /settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch models.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	settings, err := auth.Session(c).Store.SetSettings(patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetOnline godoc
// @Summary      Online users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.User
// @Router       /online [get]
func (h *Handler) GetOnline(c *gin.Context) {
	if h.presence == nil {
		c.JSON(http.StatusOK, []models.User{})
		return
	}
	users, err := h.presence.Online(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetCategories godoc
// @Summary      Question categories
// @Tags         game
// @Produce      json
// @Success      200  {array}  catalog.CategoryInfo
// @Router       /categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Categories())
}
