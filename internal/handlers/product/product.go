package product

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/models"
	"velora_back_end/internal/search"
	"velora_back_end/internal/services"
	"velora_back_end/internal/store"
)

type ProductHandler struct {
	products store.ProductStore
	reviews  *services.ReviewService
}

func NewProductHandler(products store.ProductStore, reviews *services.ReviewService) *ProductHandler {
	return &ProductHandler{products: products, reviews: reviews}
}

// =========================
// 🔵 CATALOGUE PUBLIC
// =========================

//
// GET /api/products — liste filtrée et paginée
//
func (h *ProductHandler) List(c *gin.Context) {
	filter := models.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}

	if v := c.Query("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &p
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &p
		}
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("perPage", "12"))

	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     filter.Page,
		"perPage":  filter.PerPage,
	})
}

//
// GET /api/products/:id — fiche produit avec avis
//
func (h *ProductHandler) Get(c *gin.Context) {
	productID := c.Param("id")

	product, err := cache.GetProductFromCache(c.Request.Context(), h.products, productID)
	if err != nil || product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	reviews, err := h.reviews.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"reviews": reviews,
	})
}

//
// GET /api/search?q= — recherche Elasticsearch
//
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	results, err := search.SearchProducts(c.Request.Context(), query)
	if err != nil {
		// repli sur le filtre catalogue si Elastic est indisponible
		log.Println("⚠️ Recherche Elastic en échec, repli sur le catalogue:", err)
		products, total, ferr := h.products.List(c.Request.Context(), models.ProductFilter{Search: query, Page: 1, PerPage: 50})
		if ferr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": products, "count": total})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

//
// GET /api/categories
//
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.products.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération catégories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// =========================
// 🟠 GESTION CATALOGUE (ADMIN)
// =========================

type productInput struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	Cost              float64 `json:"cost"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	Category          string  `json:"category"`
	ImageURL          string  `json:"imageUrl"`
}

func (in productInput) validate() string {
	if in.Name == "" {
		return "Le nom du produit est requis"
	}
	if in.Price < 0 {
		return "Le prix ne peut pas être négatif"
	}
	if in.Cost < 0 {
		return "Le coût ne peut pas être négatif"
	}
	if in.Stock < 0 {
		return "Le stock ne peut pas être négatif"
	}
	return ""
}

//
// 🟢 POST /api/admin/products
//
func (h *ProductHandler) Create(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	now := time.Now().UTC()
	product := models.Product{
		ID:                gocql.UUIDFromTime(now),
		Name:              input.Name,
		Description:       input.Description,
		Price:             input.Price,
		Cost:              input.Cost,
		Stock:             input.Stock,
		LowStockThreshold: input.LowStockThreshold,
		Category:          input.Category,
		ImageURL:          input.ImageURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := h.products.Insert(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	search.IndexProduct(c.Request.Context(), product)
	log.Printf("✅ Produit créé: %s (%s)", product.Name, product.ID)

	c.JSON(http.StatusCreated, gin.H{"message": "Produit créé", "product": product})
}

//
// 🟡 PUT /api/admin/products/:id
//
func (h *ProductHandler) Update(c *gin.Context) {
	pid, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	existing, err := h.products.Get(c.Request.Context(), pid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Cost = input.Cost
	existing.Stock = input.Stock
	existing.LowStockThreshold = input.LowStockThreshold
	existing.Category = input.Category
	existing.ImageURL = input.ImageURL
	existing.UpdatedAt = time.Now().UTC()

	if err := h.products.Update(c.Request.Context(), existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	search.IndexProduct(c.Request.Context(), *existing)
	cache.InvalidateProductCache(pid.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour", "product": existing})
}

//
// 🔴 DELETE /api/admin/products/:id
//
func (h *ProductHandler) Delete(c *gin.Context) {
	pid, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	existing, err := h.products.Get(c.Request.Context(), pid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), pid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	search.RemoveProduct(c.Request.Context(), pid.String())
	cache.InvalidateProductCache(pid.String())
	log.Printf("🗑️ Produit supprimé: %s", pid)

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
