package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID                gocql.UUID `json:"id" db:"product_id"`
	Name              string     `json:"name" db:"name"`
	Description       string     `json:"description" db:"description"`
	Price             float64    `json:"price" db:"price"`
	Cost              float64    `json:"cost" db:"cost"`
	Stock             int        `json:"stock" db:"stock"`
	LowStockThreshold int        `json:"low_stock_threshold" db:"low_stock_threshold"`
	Rating            float64    `json:"rating" db:"rating"`
	ReviewCount       int        `json:"review_count" db:"review_count"`
	Category          string     `json:"category" db:"category"`
	ImageURL          string     `json:"image_url" db:"image_url"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// ProductFilter regroupe les critères de recherche du catalogue
// (recherche texte, catégorie, fourchette de prix, tri, pagination).
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string // "newest", "price-asc", "price-desc", "rating"
	Page     int
	PerPage  int
}
