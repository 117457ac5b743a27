package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

var validCategories = map[string]Category{
	"appetizer": CategoryAppetizer,
	"side":      CategorySide,
	"entree":    CategoryEntree,
	"drink":     CategoryDrink,
}

// --------------------------------------------------
// List in-stock items for a category
// --------------------------------------------------
func (h *Handler) GetMenu(c *gin.Context) {
	category, ok := validCategories[c.Param("category")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	items, err := h.service.AvailableMenu(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menu"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// --------------------------------------------------
// List premium entrees
// --------------------------------------------------
func (h *Handler) GetPremiumEntrees(c *gin.Context) {
	names, err := h.service.PremiumEntrees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch premium entrees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"premium_entrees": names})
}
