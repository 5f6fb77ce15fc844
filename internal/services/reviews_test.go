package services

import (
	"context"
	"sync"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func newReviewFixture(p *models.Product) (*ReviewService, *memProductStore) {
	products := newMemProductStore(p)
	users := newMemUserStore(
		testUser("u1", "claire"),
		testUser("u2", "marc"),
		testUser("u3", "lison"),
		&models.User{ID: "admin", Name: "admin", Email: "admin@velora.shop", Role: models.RoleAdmin},
	)
	return NewReviewService(newMemReviewStore(), products, users), products
}

func TestAddReviewRecomputesRating(t *testing.T) {
	ctx := context.Background()
	p := testProduct("clavier", 50, 30, 5)
	svc, products := newReviewFixture(p)

	_, err := svc.Add(ctx, "u1", p.ID.String(), 5, "excellent")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u2", p.ID.String(), 3, "correct")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u3", p.ID.String(), 4, "bien")
	require.NoError(t, err)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Rating)
	assert.Equal(t, 3, got.ReviewCount)
}

func TestAddReviewRoundsToOneDecimal(t *testing.T) {
	ctx := context.Background()
	p := testProduct("souris", 25, 10, 5)
	svc, products := newReviewFixture(p)

	// {5, 4, 4} -> 4.333... -> 4.3
	_, err := svc.Add(ctx, "u1", p.ID.String(), 5, "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u2", p.ID.String(), 4, "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u3", p.ID.String(), 4, "")
	require.NoError(t, err)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, got.Rating)
}

func TestAddReviewRatingBounds(t *testing.T) {
	p := testProduct("écran", 200, 120, 5)
	svc, _ := newReviewFixture(p)

	_, err := svc.Add(context.Background(), "u1", p.ID.String(), 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = svc.Add(context.Background(), "u1", p.ID.String(), 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestAddReviewDuplicate(t *testing.T) {
	ctx := context.Background()
	p := testProduct("casque", 89, 40, 5)
	svc, _ := newReviewFixture(p)

	_, err := svc.Add(ctx, "u1", p.ID.String(), 4, "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", p.ID.String(), 5, "je change d'avis")
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

// Deux dépôts simultanés du même utilisateur : la réservation
// conditionnelle n'en laisse passer qu'un.
func TestAddReviewConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	p := testProduct("enceinte", 150, 80, 5)
	svc, products := newReviewFixture(p)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _, errs[0] = svc.Add(ctx, "u1", p.ID.String(), 5, "") }()
	go func() { defer wg.Done(); _, errs[1] = svc.Add(ctx, "u1", p.ID.String(), 2, "") }()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateReview)
		}
	}
	assert.Equal(t, 1, succeeded)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount)
}

// Supprimer son avis libère le couple (produit, utilisateur) : un
// nouvel avis redevient possible.
func TestAddReviewAgainAfterDelete(t *testing.T) {
	ctx := context.Background()
	p := testProduct("webcam", 70, 30, 5)
	svc, products := newReviewFixture(p)

	review, err := svc.Add(ctx, "u1", p.ID.String(), 2, "déçue")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, p.ID.String(), review.ID.String(), "u1", models.RoleCustomer))

	_, err = svc.Add(ctx, "u1", p.ID.String(), 4, "bien mieux après mise à jour")
	require.NoError(t, err)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Rating)
	assert.Equal(t, 1, got.ReviewCount)
}

func TestAddReviewUnknownProductOrUser(t *testing.T) {
	p := testProduct("hub", 35, 15, 5)
	svc, _ := newReviewFixture(p)

	_, err := svc.Add(context.Background(), "u1", gocql.TimeUUID().String(), 4, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Add(context.Background(), "inconnu", p.ID.String(), 4, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	ctx := context.Background()
	p := testProduct("clavier", 50, 30, 5)
	svc, products := newReviewFixture(p)

	_, err := svc.Add(ctx, "u1", p.ID.String(), 5, "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u2", p.ID.String(), 4, "")
	require.NoError(t, err)
	toDelete, err := svc.Add(ctx, "u3", p.ID.String(), 3, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID.String(), toDelete.ID.String(), "u3", models.RoleCustomer))

	// {5, 4} -> 4.5
	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.Rating)
	assert.Equal(t, 2, got.ReviewCount)
}

func TestDeleteLastReviewResetsRating(t *testing.T) {
	ctx := context.Background()
	p := testProduct("souris", 25, 10, 5)
	svc, products := newReviewFixture(p)

	review, err := svc.Add(ctx, "u1", p.ID.String(), 5, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, p.ID.String(), review.ID.String(), "u1", models.RoleCustomer))

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Rating)
	assert.Equal(t, 0, got.ReviewCount)
}

func TestDeleteReviewOwnership(t *testing.T) {
	ctx := context.Background()
	p := testProduct("écran", 200, 120, 5)
	svc, _ := newReviewFixture(p)

	review, err := svc.Add(ctx, "u1", p.ID.String(), 4, "")
	require.NoError(t, err)

	// un autre client ne peut pas supprimer
	err = svc.Delete(ctx, p.ID.String(), review.ID.String(), "u2", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	// un admin, oui
	err = svc.Delete(ctx, p.ID.String(), review.ID.String(), "admin", models.RoleAdmin)
	assert.NoError(t, err)
}

func TestDeleteReviewNotFound(t *testing.T) {
	p := testProduct("hub", 35, 15, 5)
	svc, _ := newReviewFixture(p)

	err := svc.Delete(context.Background(), p.ID.String(), gocql.TimeUUID().String(), "u1", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrNotFound)
}
