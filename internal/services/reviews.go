package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

// ReviewService gère les avis produit et recalcule la note agrégée du
// produit à chaque création ou suppression.
type ReviewService struct {
	reviews  store.ReviewStore
	products store.ProductStore
	users    store.UserStore
}

func NewReviewService(reviews store.ReviewStore, products store.ProductStore, users store.UserStore) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, users: users}
}

// Add crée un avis : note entre 1 et 5, un seul avis par couple
// (produit, utilisateur). L'unicité est garantie par l'écriture
// conditionnelle du store, pas par une lecture préalable.
func (s *ReviewService) Add(ctx context.Context, userID, productID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture utilisateur: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	product, err := s.products.Get(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("lecture produit: %w", err)
	}
	if product == nil {
		return nil, ErrNotFound
	}

	review := &models.Review{
		ID:        gocql.TimeUUID(),
		ProductID: pid,
		UserID:    userID,
		UserName:  user.Name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	applied, err := s.reviews.Insert(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("création avis: %w", err)
	}
	if !applied {
		return nil, ErrDuplicateReview
	}

	if err := s.recomputeRating(ctx, pid); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete supprime un avis : seul son auteur ou un admin peut le faire.
// La note du produit est recalculée ensuite.
func (s *ReviewService) Delete(ctx context.Context, productID, reviewID, requesterID, requesterRole string) error {
	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		return ErrNotFound
	}
	rid, err := gocql.ParseUUID(reviewID)
	if err != nil {
		return ErrNotFound
	}

	review, err := s.reviews.Get(ctx, pid, rid)
	if err != nil {
		return fmt.Errorf("lecture avis: %w", err)
	}
	if review == nil {
		return ErrNotFound
	}
	if review.UserID != requesterID && requesterRole != models.RoleAdmin {
		return ErrForbidden
	}

	if err := s.reviews.Delete(ctx, pid, rid, review.UserID); err != nil {
		return fmt.Errorf("suppression avis: %w", err)
	}
	return s.recomputeRating(ctx, pid)
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.reviews.ListByProduct(ctx, pid)
}

// recomputeRating recalcule la moyenne (arrondie à une décimale) et le
// nombre d'avis du produit. Sans avis, la note retombe à 0.
func (s *ReviewService) recomputeRating(ctx context.Context, productID gocql.UUID) error {
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("lecture avis: %w", err)
	}

	if len(reviews) == 0 {
		return s.products.UpdateRating(ctx, productID, 0, 0)
	}

	var total int
	for _, r := range reviews {
		total += r.Rating
	}
	average := float64(total) / float64(len(reviews))
	rounded := math.Round(average*10) / 10

	return s.products.UpdateRating(ctx, productID, rounded, len(reviews))
}
