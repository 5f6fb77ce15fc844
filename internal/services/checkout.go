package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

// OrderService orchestre la conversion panier → commandes et l'achat
// direct. Les commandes figent un instantané complet (client, produit,
// prix, coût, profit) au moment de l'achat.
type OrderService struct {
	orders   store.OrderStore
	products store.ProductStore
	users    store.UserStore
	carts    store.CartStore
}

func NewOrderService(orders store.OrderStore, products store.ProductStore, users store.UserStore, carts store.CartStore) *OrderService {
	return &OrderService{orders: orders, products: products, users: users, carts: carts}
}

func newOrder(user *models.User, product *models.Product, quantity int) *models.Order {
	now := time.Now()
	return &models.Order{
		ID:            gocql.UUIDFromTime(now),
		UserID:        user.ID,
		ProductID:     product.ID,
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		ProductName:   product.Name,
		Price:         product.Price,
		Cost:          product.Cost,
		Profit:        product.Price - product.Cost,
		Quantity:      quantity,
		Status:        models.OrderProcessing,
		StatusHistory: []models.StatusEntry{{
			Status: models.OrderProcessing,
			Date:   now,
			Note:   "Commande créée",
		}},
		// Le service de notification est seul responsable du passage
		// pending -> sent/failed.
		EmailStatus:  models.EmailPending,
		PurchaseDate: now,
	}
}

// CreateOrder est l'achat direct d'une unité, hors panier. Le contrôle de
// stock et la décrémentation forment une seule opération conditionnelle :
// deux achats concurrents de la dernière unité ne peuvent pas réussir
// tous les deux.
func (s *OrderService) CreateOrder(ctx context.Context, userID, productID string) (*models.Order, error) {
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
	if product.Stock <= 0 {
		return nil, ErrOutOfStock
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture utilisateur: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	ok, err := s.products.DecrementStock(ctx, product.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("décrément stock: %w", err)
	}
	if !ok {
		// Un achat concurrent a pris la dernière unité entre-temps.
		return nil, ErrOutOfStock
	}

	order := newOrder(user, product, 1)
	if err := s.orders.Insert(ctx, order); err != nil {
		// L'unité réservée est rendue au stock : pas de décrément
		// orphelin sans commande en face.
		if restoreErr := s.products.IncrementStock(ctx, product.ID, 1); restoreErr != nil {
			log.Println("❌ Restauration du stock impossible:", restoreErr)
		}
		return nil, fmt.Errorf("création commande: %w", err)
	}
	return order, nil
}

// Checkout convertit chaque ligne du panier en une commande. Les lignes
// dont le produit a disparu du catalogue sont ignorées sans erreur. Le
// stock n'est pas décrémenté ici, contrairement à l'achat direct : cette
// asymétrie est un comportement assumé du modèle, pas un oubli. Le panier
// est vidé dans tous les cas, y compris quand des lignes ont été ignorées.
func (s *OrderService) Checkout(ctx context.Context, userID string) ([]*models.Order, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture panier: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture utilisateur: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	var created []*models.Order
	for _, item := range cart.Items {
		pid, err := gocql.ParseUUID(item.ProductID)
		if err != nil {
			continue
		}
		product, err := s.products.Get(ctx, pid)
		if err != nil {
			return created, fmt.Errorf("lecture produit: %w", err)
		}
		if product == nil {
			continue
		}

		order := newOrder(user, product, item.Quantity)
		if err := s.orders.Insert(ctx, order); err != nil {
			return created, fmt.Errorf("création commande: %w", err)
		}
		created = append(created, order)
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return created, fmt.Errorf("vidage panier: %w", err)
	}
	return created, nil
}

// Reorder recrée une commande à partir d'une commande existante : prix et
// coût actuels du catalogue, quantité historique.
func (s *OrderService) Reorder(ctx context.Context, orderID, userID string) (*models.Order, error) {
	oid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return nil, ErrNotFound
	}

	existing, err := s.orders.Get(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("lecture commande: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.UserID != userID {
		return nil, ErrForbidden
	}

	product, err := s.products.Get(ctx, existing.ProductID)
	if err != nil {
		return nil, fmt.Errorf("lecture produit: %w", err)
	}
	if product == nil {
		// Produit retiré du catalogue depuis, aucune commande créée.
		return nil, ErrNotFound
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lecture utilisateur: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	order := newOrder(user, product, existing.Quantity)
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("création commande: %w", err)
	}
	return order, nil
}

// UpdateStatus (admin) change le statut et ajoute une entrée à
// l'historique, avec la note fournie ou une note générée.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status, note string) error {
	switch status {
	case models.OrderProcessing, models.OrderShipped, models.OrderDelivered, models.OrderCancelled:
	default:
		return ErrValidation
	}

	oid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return ErrNotFound
	}

	order, err := s.orders.Get(ctx, oid)
	if err != nil {
		return fmt.Errorf("lecture commande: %w", err)
	}
	if order == nil {
		return ErrNotFound
	}

	if note == "" {
		note = fmt.Sprintf("Statut mis à jour vers %s", status)
	}
	history := append(order.StatusHistory, models.StatusEntry{
		Status: status,
		Date:   time.Now(),
		Note:   note,
	})

	return s.orders.UpdateStatus(ctx, oid, status, history)
}

// Invoice renvoie une commande pour affichage de facture, réservé à son
// propriétaire.
func (s *OrderService) Invoice(ctx context.Context, orderID, userID string) (*models.Order, error) {
	oid, err := gocql.ParseUUID(orderID)
	if err != nil {
		return nil, ErrNotFound
	}

	order, err := s.orders.Get(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("lecture commande: %w", err)
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	return s.orders.All(ctx)
}
