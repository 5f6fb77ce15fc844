package admin

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/store"
)

// DatabaseHandler expose une vue brute des collections pour le back
// office : consultation avec recherche texte, et export CSV.
type DatabaseHandler struct {
	products store.ProductStore
	users    store.UserStore
	orders   store.OrderStore
}

func NewDatabaseHandler(products store.ProductStore, users store.UserStore, orders store.OrderStore) *DatabaseHandler {
	return &DatabaseHandler{products: products, users: users, orders: orders}
}

//
// 🗄️ GET /api/admin/database/:collection?search=
//
func (h *DatabaseHandler) View(c *gin.Context) {
	headers, rows, err := h.collect(c)
	if err != nil {
		return // réponse déjà écrite
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		entry := gin.H{}
		for i, col := range headers {
			entry[col] = row[i]
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"collection": c.Param("collection"),
		"columns":    headers,
		"rows":       out,
		"count":      len(out),
	})
}

//
// 📤 GET /api/admin/database/:collection/export — export CSV
//
func (h *DatabaseHandler) ExportCSV(c *gin.Context) {
	headers, rows, err := h.collect(c)
	if err != nil {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", c.Param("collection")))

	w := csv.NewWriter(c.Writer)
	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

// collect charge la collection demandée sous forme tabulaire, filtrée
// par ?search= (sous-chaîne, insensible à la casse). Les mots de passe
// ne sortent jamais de la base.
func (h *DatabaseHandler) collect(c *gin.Context) ([]string, [][]string, error) {
	ctx := c.Request.Context()
	search := strings.ToLower(c.Query("search"))

	var headers []string
	var rows [][]string

	switch c.Param("collection") {
	case "products":
		products, err := h.products.All(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
			return nil, nil, err
		}
		headers = []string{"product_id", "name", "category", "price", "cost", "stock", "rating", "review_count"}
		for _, p := range products {
			rows = append(rows, []string{
				p.ID.String(), p.Name, p.Category,
				fmt.Sprintf("%.2f", p.Price), fmt.Sprintf("%.2f", p.Cost),
				fmt.Sprintf("%d", p.Stock), fmt.Sprintf("%.1f", p.Rating), fmt.Sprintf("%d", p.ReviewCount),
			})
		}

	case "users":
		users, err := h.users.All(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
			return nil, nil, err
		}
		headers = []string{"user_id", "name", "email", "role", "created_at"}
		for _, u := range users {
			rows = append(rows, []string{
				u.ID, u.Name, u.Email, u.Role, u.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			})
		}

	case "orders":
		orders, err := h.orders.All(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
			return nil, nil, err
		}
		headers = []string{"order_id", "customer", "product", "quantity", "price", "profit", "status", "email_status", "purchase_date"}
		for _, o := range orders {
			rows = append(rows, []string{
				o.ID.String(), o.CustomerName, o.ProductName,
				fmt.Sprintf("%d", o.Quantity), fmt.Sprintf("%.2f", o.Price), fmt.Sprintf("%.2f", o.Profit),
				o.Status, o.EmailStatus, o.PurchaseDate.UTC().Format("2006-01-02 15:04:05"),
			})
		}

	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Collection inconnue"})
		return nil, nil, fmt.Errorf("collection inconnue")
	}

	if search != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if strings.Contains(strings.ToLower(strings.Join(row, " ")), search) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	return headers, rows, nil
}
