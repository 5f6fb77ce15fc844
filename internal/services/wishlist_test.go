package services

import (
	"context"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func newWishlistFixture(products ...*models.Product) (*WishlistService, *CartService, *memProductStore) {
	prodStore := newMemProductStore(products...)
	cartSvc := NewCartService(newMemCartStore(), prodStore)
	return NewWishlistService(newMemWishlistStore(), prodStore, cartSvc), cartSvc, prodStore
}

func TestWishlistAddSnapshots(t *testing.T) {
	ctx := context.Background()
	p := testProduct("clavier", 50, 30, 5)
	svc, _, products := newWishlistFixture(p)

	require.NoError(t, svc.Add(ctx, "u1", p.ID.String()))

	// le prix catalogue change, l'instantané reste
	p.Price = 75
	require.NoError(t, products.Update(ctx, p))

	wl, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, wl.Items, 1)
	assert.Equal(t, "clavier", wl.Items[0].ProductName)
	assert.Equal(t, 50.0, wl.Items[0].Price)
}

func TestWishlistAddDuplicate(t *testing.T) {
	ctx := context.Background()
	p := testProduct("souris", 25, 10, 5)
	svc, _, _ := newWishlistFixture(p)

	require.NoError(t, svc.Add(ctx, "u1", p.ID.String()))
	err := svc.Add(ctx, "u1", p.ID.String())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc, _, _ := newWishlistFixture()

	err := svc.Add(context.Background(), "u1", gocql.TimeUUID().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistGetEmpty(t *testing.T) {
	svc, _, _ := newWishlistFixture()

	wl, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, wl.Items)
}

func TestWishlistMoveToCart(t *testing.T) {
	ctx := context.Background()
	p := testProduct("casque", 89, 40, 5)
	svc, cartSvc, _ := newWishlistFixture(p)

	require.NoError(t, svc.Add(ctx, "u1", p.ID.String()))
	require.NoError(t, svc.MoveToCart(ctx, "u1", p.ID.String()))

	wl, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, wl.Items)

	cart, err := cartSvc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestWishlistMoveToCartAccumulates(t *testing.T) {
	ctx := context.Background()
	p := testProduct("écran", 200, 120, 5)
	svc, cartSvc, _ := newWishlistFixture(p)

	_, err := cartSvc.AddItem(ctx, "u1", p.ID.String(), 2)
	require.NoError(t, err)
	require.NoError(t, svc.Add(ctx, "u1", p.ID.String()))

	require.NoError(t, svc.MoveToCart(ctx, "u1", p.ID.String()))

	cart, err := cartSvc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestWishlistMoveToCartVanishedProduct(t *testing.T) {
	ctx := context.Background()
	p := testProduct("hub", 35, 15, 5)
	svc, _, products := newWishlistFixture(p)

	require.NoError(t, svc.Add(ctx, "u1", p.ID.String()))
	require.NoError(t, products.Delete(ctx, p.ID))

	err := svc.MoveToCart(ctx, "u1", p.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	// l'entrée wishlist n'a pas bougé
	wl, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, wl.Items, 1)
}
