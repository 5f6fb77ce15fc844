package store

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// ScyllaReviewStore persiste les avis dans reviews_by_product, clusterisés
// par produit pour la lecture d'une fiche. La table de réservation
// reviews_by_user_product garantit l'unicité par couple (produit,
// utilisateur).
type ScyllaReviewStore struct{}

func NewScyllaReviewStore() *ScyllaReviewStore {
	return &ScyllaReviewStore{}
}

const reviewColumns = `product_id, review_id, user_id, user_name, rating, comment, created_at`

func (s *ScyllaReviewStore) Insert(ctx context.Context, r *models.Review) (bool, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return false, err
	}

	// L'unicité passe par l'écriture conditionnelle, pas par une
	// lecture préalable : deux dépôts concurrents du même utilisateur
	// ne peuvent pas réussir tous les deux.
	applied, err := session.Query(`INSERT INTO reviews_by_user_product (product_id, user_id, review_id) VALUES (?, ?, ?) IF NOT EXISTS`,
		r.ProductID, r.UserID, r.ID).WithContext(ctx).
		MapScanCAS(map[string]interface{}{})
	if err != nil {
		return false, err
	}
	if !applied {
		return false, nil
	}

	if err := session.Query(`INSERT INTO reviews_by_product (`+reviewColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ProductID, r.ID, r.UserID, r.UserName, r.Rating, r.Comment, r.CreatedAt).
		WithContext(ctx).Exec(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ScyllaReviewStore) Get(ctx context.Context, productID, reviewID gocql.UUID) (*models.Review, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	var r models.Review
	err = session.Query(`SELECT `+reviewColumns+` FROM reviews_by_product WHERE product_id = ? AND review_id = ?`,
		productID, reviewID).WithContext(ctx).
		Scan(&r.ProductID, &r.ID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ScyllaReviewStore) Delete(ctx context.Context, productID, reviewID gocql.UUID, userID string) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	if err := session.Query(`DELETE FROM reviews_by_product WHERE product_id = ? AND review_id = ?`,
		productID, reviewID).WithContext(ctx).Exec(); err != nil {
		return err
	}
	// Libère la réservation : l'utilisateur peut déposer un nouvel avis.
	return session.Query(`DELETE FROM reviews_by_user_product WHERE product_id = ? AND user_id = ?`,
		productID, userID).WithContext(ctx).Exec()
}

func (s *ScyllaReviewStore) ListByProduct(ctx context.Context, productID gocql.UUID) ([]models.Review, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT `+reviewColumns+` FROM reviews_by_product WHERE product_id = ?`, productID).
		WithContext(ctx).Iter()
	var reviews []models.Review
	var r models.Review
	for iter.Scan(&r.ProductID, &r.ID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt) {
		reviews = append(reviews, r)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return reviews, nil
}
