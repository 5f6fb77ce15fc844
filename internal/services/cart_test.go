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

func testProduct(name string, price, cost float64, stock int) *models.Product {
	return &models.Product{
		ID:       gocql.TimeUUID(),
		Name:     name,
		Price:    price,
		Cost:     cost,
		Stock:    stock,
		Category: "test",
		ImageURL: "/uploads/products/" + name + ".jpg",
	}
}

func TestCartGetEmpty(t *testing.T) {
	svc := NewCartService(newMemCartStore(), newMemProductStore())

	cart, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total())
}

func TestCartAddItemSnapshotsProduct(t *testing.T) {
	ctx := context.Background()
	p := testProduct("clavier", 49.90, 20, 10)
	products := newMemProductStore(p)
	svc := NewCartService(newMemCartStore(), products)

	cart, err := svc.AddItem(ctx, "u1", p.ID.String(), 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "clavier", cart.Items[0].ProductName)
	assert.Equal(t, 49.90, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// un changement de prix catalogue ne touche pas l'instantané
	p.Price = 99.90
	require.NoError(t, products.Update(ctx, p))

	cart, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 49.90, cart.Items[0].Price)
	assert.Equal(t, 99.80, cart.Total())
}

func TestCartAddItemAccumulates(t *testing.T) {
	ctx := context.Background()
	p := testProduct("souris", 25, 10, 5)
	svc := NewCartService(newMemCartStore(), newMemProductStore(p))

	_, err := svc.AddItem(ctx, "u1", p.ID.String(), 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u1", p.ID.String(), 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestCartAddItemCoercesQuantity(t *testing.T) {
	p := testProduct("écran", 199, 120, 3)
	svc := NewCartService(newMemCartStore(), newMemProductStore(p))

	cart, err := svc.AddItem(context.Background(), "u1", p.ID.String(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc := NewCartService(newMemCartStore(), newMemProductStore())

	_, err := svc.AddItem(context.Background(), "u1", gocql.TimeUUID().String(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItem(context.Background(), "u1", "pas-un-uuid", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	p := testProduct("casque", 89, 40, 8)
	svc := NewCartService(newMemCartStore(), newMemProductStore(p))

	_, err := svc.AddItem(ctx, "u1", p.ID.String(), 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "u1", p.ID.String(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// quantité nulle = suppression de la ligne
	cart, err = svc.UpdateQuantity(ctx, "u1", p.ID.String(), 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartUpdateQuantityMissingLine(t *testing.T) {
	ctx := context.Background()
	p := testProduct("hub", 35, 15, 2)
	svc := NewCartService(newMemCartStore(), newMemProductStore(p))

	// aucun panier du tout
	_, err := svc.UpdateQuantity(ctx, "u1", p.ID.String(), 2)
	assert.ErrorIs(t, err, ErrNotFound)

	// panier existant mais ligne absente
	_, err = svc.AddItem(ctx, "u1", p.ID.String(), 1)
	require.NoError(t, err)
	_, err = svc.UpdateQuantity(ctx, "u1", gocql.TimeUUID().String(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartRemoveItemIdempotent(t *testing.T) {
	ctx := context.Background()
	p := testProduct("câble", 9.99, 2, 50)
	svc := NewCartService(newMemCartStore(), newMemProductStore(p))

	_, err := svc.AddItem(ctx, "u1", p.ID.String(), 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "u1", p.ID.String())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// retirer une ligne déjà absente reste un succès
	cart, err = svc.RemoveItem(ctx, "u1", p.ID.String())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	p1 := testProduct("p1", 10, 5, 100)
	p2 := testProduct("p2", 20, 8, 100)
	svc := NewCartService(newMemCartStore(), newMemProductStore(p1, p2))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.AddItem(ctx, "u1", p1.ID.String(), 1)
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.AddItem(ctx, "u1", p2.ID.String(), 1)
		assert.NoError(t, err)
	}()
	wg.Wait()

	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}
