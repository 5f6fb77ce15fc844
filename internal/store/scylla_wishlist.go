package store

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// ScyllaWishlistStore persiste la wishlist dans le keyspace users, une
// ligne par (user_id, product_id) avec les instantanés nom/prix/image.
type ScyllaWishlistStore struct{}

func NewScyllaWishlistStore() *ScyllaWishlistStore {
	return &ScyllaWishlistStore{}
}

func (s *ScyllaWishlistStore) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT user_id, product_id, product_name, price, image_url, added_at FROM wishlist WHERE user_id = ?`, userID).
		WithContext(ctx).Iter()
	wl := &models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}
	var item models.WishlistItem
	for iter.Scan(&item.UserID, &item.ProductID, &item.ProductName, &item.Price, &item.ImageURL, &item.AddedAt) {
		wl.Items = append(wl.Items, item)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return wl, nil
}

func (s *ScyllaWishlistStore) Has(ctx context.Context, userID, productID string) (bool, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return false, err
	}

	var found string
	err = session.Query(`SELECT product_id FROM wishlist WHERE user_id = ? AND product_id = ?`, userID, productID).
		WithContext(ctx).Scan(&found)
	if errors.Is(err, gocql.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *ScyllaWishlistStore) Add(ctx context.Context, item models.WishlistItem) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}
	return session.Query(`INSERT INTO wishlist (user_id, product_id, product_name, price, image_url, added_at) VALUES (?, ?, ?, ?, ?, ?)`,
		item.UserID, item.ProductID, item.ProductName, item.Price, item.ImageURL, item.AddedAt).
		WithContext(ctx).Exec()
}

func (s *ScyllaWishlistStore) Remove(ctx context.Context, userID, productID string) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}
	return session.Query(`DELETE FROM wishlist WHERE user_id = ? AND product_id = ?`, userID, productID).
		WithContext(ctx).Exec()
}
