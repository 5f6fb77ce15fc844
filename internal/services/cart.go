package services

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

// CartService gère le panier d'un utilisateur. Chaque ligne est un
// instantané (nom, prix, image) pris dans le catalogue au moment de
// l'ajout ; un changement de prix ultérieur ne touche jamais le panier.
type CartService struct {
	carts    store.CartStore
	products store.ProductStore
}

func NewCartService(carts store.CartStore, products store.ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture panier: %w", err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return cart, nil
}

// AddItem ajoute un produit au panier. Si la ligne existe déjà la quantité
// s'accumule, sinon une nouvelle ligne est créée avec un instantané frais
// du catalogue. Quantité ramenée à 1 minimum.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		return nil, ErrNotFound
	}

	product, err := s.products.Get(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("lecture produit: %w", err)
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if quantity < 1 {
		quantity = 1
	}

	return s.carts.Update(ctx, userID, func(cart *models.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += quantity
				return nil
			}
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:   productID,
			ProductName: product.Name,
			Price:       product.Price,
			ImageURL:    product.ImageURL,
			Quantity:    quantity,
		})
		return nil
	})
}

// UpdateQuantity fixe la quantité d'une ligne existante. Une quantité
// nulle ou négative retire la ligne.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture panier: %w", err)
	}
	if cart == nil {
		return nil, ErrNotFound
	}

	return s.carts.Update(ctx, userID, func(cart *models.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID != productID {
				continue
			}
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			return nil
		}
		return ErrNotFound
	})
}

// Clear vide complètement le panier.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// RemoveItem retire une ligne du panier. Retirer une ligne absente est un
// succès sans effet.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	return s.carts.Update(ctx, userID, func(cart *models.Cart) error {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
		return nil
	})
}
