package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

//
// 📦 GET /api/admin/orders — toutes les commandes
//
func (h *OrderHandler) All(c *gin.Context) {
	orders, err := h.orders.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

//
// 🔁 PUT /api/admin/orders/:id/status
//
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status, input.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour"})
}
