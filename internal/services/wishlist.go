package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

type WishlistService struct {
	wishlists store.WishlistStore
	products  store.ProductStore
	cart      *CartService
}

func NewWishlistService(wishlists store.WishlistStore, products store.ProductStore, cart *CartService) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products, cart: cart}
}

func (s *WishlistService) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	wl, err := s.wishlists.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture wishlist: %w", err)
	}
	if wl == nil {
		wl = &models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}
	}
	return wl, nil
}

// Add ajoute un produit à la wishlist avec un instantané nom/prix/image.
// Un produit déjà présent est refusé.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) error {
	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		return ErrNotFound
	}

	product, err := s.products.Get(ctx, pid)
	if err != nil {
		return fmt.Errorf("lecture produit: %w", err)
	}
	if product == nil {
		return ErrNotFound
	}

	exists, err := s.wishlists.Has(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("lecture wishlist: %w", err)
	}
	if exists {
		return ErrValidation
	}

	return s.wishlists.Add(ctx, models.WishlistItem{
		UserID:      userID,
		ProductID:   productID,
		ProductName: product.Name,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		AddedAt:     time.Now(),
	})
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	return s.wishlists.Remove(ctx, userID, productID)
}

// MoveToCart ajoute une unité du produit au panier (cumul si déjà présent)
// puis retire l'entrée de la wishlist.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID string) error {
	if _, err := s.cart.AddItem(ctx, userID, productID, 1); err != nil {
		return err
	}
	return s.wishlists.Remove(ctx, userID, productID)
}
