package models

import "time"

// WishlistItem garde les mêmes instantanés que le panier (nom, prix, image)
// mais sans quantité.
type WishlistItem struct {
	UserID      string    `json:"user_id" db:"user_id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	Price       float64   `json:"price" db:"price"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	AddedAt     time.Time `json:"added_at" db:"added_at"`
}

type Wishlist struct {
	UserID string         `json:"user_id"`
	Items  []WishlistItem `json:"items"`
}
