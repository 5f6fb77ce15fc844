package store

import (
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func catalog() []models.Product {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	mk := func(name, category string, price, rating float64, age int) models.Product {
		return models.Product{
			ID:        gocql.TimeUUID(),
			Name:      name,
			Category:  category,
			Price:     price,
			Rating:    rating,
			CreatedAt: base.AddDate(0, 0, age),
		}
	}
	return []models.Product{
		mk("Clavier mécanique", "informatique", 89, 4.5, 1),
		mk("Souris sans fil", "informatique", 35, 4.0, 2),
		mk("Tapis de yoga", "sport", 25, 3.5, 3),
		mk("Gourde isotherme", "sport", 19, 4.8, 4),
		mk("Casque audio", "audio", 149, 4.2, 5),
	}
}

func TestFilterBySearch(t *testing.T) {
	items, total := applyProductFilter(catalog(), models.ProductFilter{Search: "CLAVIER"})
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Clavier mécanique", items[0].Name)
}

func TestFilterByCategory(t *testing.T) {
	items, total := applyProductFilter(catalog(), models.ProductFilter{Category: "sport"})
	assert.Equal(t, 2, total)
	for _, p := range items {
		assert.Equal(t, "sport", p.Category)
	}

	// "all" équivaut à aucun filtre
	_, total = applyProductFilter(catalog(), models.ProductFilter{Category: "all"})
	assert.Equal(t, 5, total)
}

func TestFilterByPriceRange(t *testing.T) {
	min, max := 20.0, 90.0
	items, total := applyProductFilter(catalog(), models.ProductFilter{MinPrice: &min, MaxPrice: &max})
	assert.Equal(t, 3, total)
	for _, p := range items {
		assert.GreaterOrEqual(t, p.Price, min)
		assert.LessOrEqual(t, p.Price, max)
	}
}

func TestFilterSortOrders(t *testing.T) {
	items, _ := applyProductFilter(catalog(), models.ProductFilter{Sort: "price-asc"})
	assert.Equal(t, "Gourde isotherme", items[0].Name)

	items, _ = applyProductFilter(catalog(), models.ProductFilter{Sort: "price-desc"})
	assert.Equal(t, "Casque audio", items[0].Name)

	items, _ = applyProductFilter(catalog(), models.ProductFilter{Sort: "rating"})
	assert.Equal(t, "Gourde isotherme", items[0].Name)

	// défaut : plus récents d'abord
	items, _ = applyProductFilter(catalog(), models.ProductFilter{})
	assert.Equal(t, "Casque audio", items[0].Name)
}

func TestFilterPagination(t *testing.T) {
	items, total := applyProductFilter(catalog(), models.ProductFilter{Sort: "price-asc", Page: 1, PerPage: 2})
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)

	items, _ = applyProductFilter(catalog(), models.ProductFilter{Sort: "price-asc", Page: 3, PerPage: 2})
	require.Len(t, items, 1)

	// page au-delà de la fin : vide mais total correct
	items, total = applyProductFilter(catalog(), models.ProductFilter{Page: 10, PerPage: 2})
	assert.Empty(t, items)
	assert.Equal(t, 5, total)
}
