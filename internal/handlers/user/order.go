package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
	"velora_back_end/internal/utils"
)

type OrderHandler struct {
	orders   *services.OrderService
	notifier *services.Notifier
}

func NewOrderHandler(orders *services.OrderService, notifier *services.Notifier) *OrderHandler {
	return &OrderHandler{orders: orders, notifier: notifier}
}

//
// 📦 GET /api/orders
//
func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

//
// 🟢 POST /api/orders — achat direct d'un produit (1 unité)
//
func (h *OrderHandler) BuyNow(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), userID, input.ProductID)
	if err != nil {
		serviceError(c, err)
		return
	}

	// envoi de la facture en arrière-plan
	h.notifier.Dispatch(*order)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée avec succès",
		"order":   order,
	})
}

//
// 🟢 POST /api/checkout — convertit le panier en commandes
//
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	orders, err := h.orders.Checkout(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	for _, order := range orders {
		h.notifier.Dispatch(*order)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande validée",
		"orders":  orders,
		"count":   len(orders),
	})
}

//
// 🔁 POST /api/orders/:id/reorder
//
func (h *OrderHandler) Reorder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	order, err := h.orders.Reorder(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.notifier.Dispatch(*order)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande repassée avec succès",
		"order":   order,
	})
}

//
// 🧾 GET /api/orders/:id/invoice — facture HTML
//
func (h *OrderHandler) Invoice(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	order, err := h.orders.Invoice(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	html := utils.GenerateInvoiceHTML(*order)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

//
// 📄 GET /api/orders/:id/invoice.pdf — facture PDF (via Chrome headless)
//
func (h *OrderHandler) InvoicePDF(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	order, err := h.orders.Invoice(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	pdf, err := utils.RenderInvoicePDF(c.Request.Context(), *order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=facture_"+order.ID.String()+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
