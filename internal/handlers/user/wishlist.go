package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

type WishlistHandler struct {
	wishlists *services.WishlistService
}

func NewWishlistHandler(wishlists *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

//
// 💖 GET /api/wishlist
//
func (h *WishlistHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	wishlist, err := h.wishlists.Get(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": wishlist.Items})
}

//
// 🟢 POST /api/wishlist
//
func (h *WishlistHandler) Add(c *gin.Context) {
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

	if err := h.wishlists.Add(c.Request.Context(), userID, input.ProductID); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit ajouté aux favoris"})
}

//
// ❌ DELETE /api/wishlist/:productId
//
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := h.wishlists.Remove(c.Request.Context(), userID, c.Param("productId")); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit retiré des favoris"})
}

//
// 🛒 POST /api/wishlist/:productId/move-to-cart
//
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := h.wishlists.MoveToCart(c.Request.Context(), userID, c.Param("productId")); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit déplacé vers le panier"})
}
