package handlers

import (
	"net/http"

	"github.com/WindyDante/Clear/internal/auth"
	"github.com/WindyDante/Clear/internal/dto"
	"github.com/WindyDante/Clear/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler lists the current user's categories.
type CategoryHandler struct {
	svc *service.CategoryService
}

// NewCategoryHandler returns a new CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CategoryResponse
// @Failure      500  {object}  map[string]string
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = dto.CategoryResponse{ID: cat.ID, Name: cat.Name}
	}
	c.JSON(http.StatusOK, out)
}
