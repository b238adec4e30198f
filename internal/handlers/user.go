package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/WindyDante/Clear/internal/auth"
	"github.com/WindyDante/Clear/internal/dto"
	"github.com/WindyDante/Clear/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves account status and preferences.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Status godoc
// @Summary      Current user status
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserStatusResponse
// @Failure      404  {object}  map[string]string
// @Router       /user/status [get]
func (h *UserHandler) Status(c *gin.Context) {
	st, err := h.svc.Status(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.UserStatusResponse{
		Username:    st.Username,
		NumOfDone:   st.NumOfDone,
		NumOfUndone: st.NumOfUndone,
	})
}

// UpdateTheme godoc
// @Summary      Update theme preference
// @Tags         user
// @Security     BearerAuth
// @Param        theme  path  int  true  "Theme id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /user/theme/{theme} [put]
func (h *UserHandler) UpdateTheme(c *gin.Context) {
	theme, err := strconv.Atoi(c.Param("theme"))
	if err != nil || theme < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid theme"})
		return
	}
	if err := h.svc.UpdateTheme(c.Request.Context(), auth.CurrentUser(c), theme); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
