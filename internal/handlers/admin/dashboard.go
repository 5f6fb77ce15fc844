package admin

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

type DashboardHandler struct {
	orders   store.OrderStore
	products store.ProductStore
	users    store.UserStore
}

func NewDashboardHandler(orders store.OrderStore, products store.ProductStore, users store.UserStore) *DashboardHandler {
	return &DashboardHandler{orders: orders, products: products, users: users}
}

//
// 📊 GET /api/admin/dashboard — vue d'ensemble de la boutique
//
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	orders, err := h.orders.All(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	products, err := h.products.All(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
		return
	}
	users, err := h.users.All(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
		return
	}

	// 💰 Statistiques globales (les commandes annulées ne comptent pas)
	var totalRevenue, totalProfit float64
	active := 0
	for _, o := range orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		totalRevenue += o.Price * float64(o.Quantity)
		totalProfit += o.Profit * float64(o.Quantity)
		active++
	}

	// 📈 Tendance des ventes sur 30 jours
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -30)
	byDay := make(map[string]*models.SalesPoint)
	for _, o := range orders {
		if o.Status == models.OrderCancelled || o.PurchaseDate.Before(since) {
			continue
		}
		day := o.PurchaseDate.UTC().Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &models.SalesPoint{Day: day}
			byDay[day] = point
		}
		point.Revenue += o.Price * float64(o.Quantity)
		point.Orders++
	}
	trend := make([]models.SalesPoint, 0, len(byDay))
	for _, p := range byDay {
		trend = append(trend, *p)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Day < trend[j].Day })

	// 🏆 Top 5 produits par unités vendues
	byProduct := make(map[string]*models.TopProduct)
	for _, o := range orders {
		if o.Status == models.OrderCancelled {
			continue
		}
		key := o.ProductID.String()
		top, ok := byProduct[key]
		if !ok {
			top = &models.TopProduct{ProductID: key, ProductName: o.ProductName}
			byProduct[key] = top
		}
		top.TotalSold += o.Quantity
		top.Revenue += o.Price * float64(o.Quantity)
	}
	topProducts := make([]models.TopProduct, 0, len(byProduct))
	for _, t := range byProduct {
		topProducts = append(topProducts, *t)
	}
	sort.Slice(topProducts, func(i, j int) bool { return topProducts[i].TotalSold > topProducts[j].TotalSold })
	if len(topProducts) > 5 {
		topProducts = topProducts[:5]
	}

	// ⚠️ Produits sous le seuil de stock
	lowStock := []models.Product{}
	for _, p := range products {
		threshold := p.LowStockThreshold
		if threshold <= 0 {
			threshold = 5
		}
		if p.Stock <= threshold {
			lowStock = append(lowStock, p)
		}
	}

	// 🕒 10 dernières commandes
	sort.Slice(orders, func(i, j int) bool { return orders[i].PurchaseDate.After(orders[j].PurchaseDate) })
	recent := orders
	if len(recent) > 10 {
		recent = recent[:10]
	}

	// 👥 Croissance clients sur 6 mois
	growth := customerGrowth(users, now)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"totalRevenue":  totalRevenue,
			"totalProfit":   totalProfit,
			"totalOrders":   active,
			"totalCustomers": len(users),
			"totalProducts": len(products),
		},
		"salesTrend":     trend,
		"topProducts":    topProducts,
		"lowStock":       lowStock,
		"recentOrders":   recent,
		"customerGrowth": growth,
	})
}

// customerGrowth compte les inscriptions par mois sur les 6 derniers
// mois, mois courant inclus.
func customerGrowth(users []models.User, now time.Time) []gin.H {
	counts := make(map[string]int)
	for _, u := range users {
		counts[u.CreatedAt.UTC().Format("2006-01")]++
	}

	growth := make([]gin.H, 0, 6)
	for i := 5; i >= 0; i-- {
		m := now.AddDate(0, -i, 0).Format("2006-01")
		growth = append(growth, gin.H{"month": m, "newCustomers": counts[m]})
	}
	return growth
}
