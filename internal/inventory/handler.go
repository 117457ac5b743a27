package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// --------------------------------------------------
// MANAGER: current stock levels
// --------------------------------------------------
func (h *Handler) GetLevels(c *gin.Context) {
	food, err := h.repo.ListFoodLevels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory"})
		return
	}

	itemTypes, err := h.repo.ListItemTypeLevels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"food":       food,
		"item_types": itemTypes,
	})
}
