package services

import (
	"context"
	"sync"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// Implémentations en mémoire des stores, fidèles aux contrats : (nil, nil)
// pour une entité absente, décrément de stock atomique, sérialisation des
// mutations de panier.

// --- produits ---

type memProductStore struct {
	mu       sync.Mutex
	products map[gocql.UUID]*models.Product
}

func newMemProductStore(products ...*models.Product) *memProductStore {
	s := &memProductStore{products: make(map[gocql.UUID]*models.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memProductStore) Get(_ context.Context, id gocql.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memProductStore) List(_ context.Context, _ models.ProductFilter) ([]models.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (s *memProductStore) All(ctx context.Context) ([]models.Product, error) {
	out, _, err := s.List(ctx, models.ProductFilter{})
	return out, err
}

func (s *memProductStore) Categories(context.Context) ([]string, error) { return nil, nil }

func (s *memProductStore) Insert(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memProductStore) Update(ctx context.Context, p *models.Product) error {
	return s.Insert(ctx, p)
}

func (s *memProductStore) Delete(_ context.Context, id gocql.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

func (s *memProductStore) DecrementStock(_ context.Context, id gocql.UUID, by int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok || p.Stock < by {
		return false, nil
	}
	p.Stock -= by
	return true, nil
}

func (s *memProductStore) IncrementStock(_ context.Context, id gocql.UUID, by int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		p.Stock += by
	}
	return nil
}

func (s *memProductStore) UpdateRating(_ context.Context, id gocql.UUID, rating float64, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		p.Rating = rating
		p.ReviewCount = count
	}
	return nil
}

// --- utilisateurs ---

type memUserStore struct {
	users map[string]*models.User
}

func newMemUserStore(users ...*models.User) *memUserStore {
	s := &memUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		cp := *u
		s.users[u.ID] = &cp
	}
	return s
}

func (s *memUserStore) Get(_ context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) Insert(_ context.Context, u *models.User) error {
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memUserStore) All(context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

// --- panier ---

type memCartStore struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string]*models.Cart)}
}

func copyCart(c *models.Cart) *models.Cart {
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	return &cp
}

func (s *memCartStore) Get(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return nil, nil
	}
	return copyCart(c), nil
}

func (s *memCartStore) Update(_ context.Context, userID string, fn func(cart *models.Cart) error) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[userID]
	if !ok {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	} else {
		cart = copyCart(cart)
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	s.carts[userID] = cart
	return copyCart(cart), nil
}

func (s *memCartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// --- wishlist ---

type memWishlistStore struct {
	items map[string][]models.WishlistItem
}

func newMemWishlistStore() *memWishlistStore {
	return &memWishlistStore{items: make(map[string][]models.WishlistItem)}
}

func (s *memWishlistStore) Get(_ context.Context, userID string) (*models.Wishlist, error) {
	items, ok := s.items[userID]
	if !ok {
		return nil, nil
	}
	return &models.Wishlist{UserID: userID, Items: append([]models.WishlistItem(nil), items...)}, nil
}

func (s *memWishlistStore) Has(_ context.Context, userID, productID string) (bool, error) {
	for _, item := range s.items[userID] {
		if item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memWishlistStore) Add(_ context.Context, item models.WishlistItem) error {
	s.items[item.UserID] = append(s.items[item.UserID], item)
	return nil
}

func (s *memWishlistStore) Remove(_ context.Context, userID, productID string) error {
	kept := s.items[userID][:0]
	for _, item := range s.items[userID] {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items[userID] = kept
	return nil
}

// --- commandes ---

type memOrderStore struct {
	mu        sync.Mutex
	orders    map[gocql.UUID]*models.Order
	insertErr error
}

func newMemOrderStore(orders ...*models.Order) *memOrderStore {
	s := &memOrderStore{orders: make(map[gocql.UUID]*models.Order)}
	for _, o := range orders {
		cp := *o
		s.orders[o.ID] = &cp
	}
	return s
}

func (s *memOrderStore) Insert(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *memOrderStore) Get(_ context.Context, id gocql.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (s *memOrderStore) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrderStore) All(context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memOrderStore) ListByPeriod(_ context.Context, from, to time.Time) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if !o.PurchaseDate.Before(from) && o.PurchaseDate.Before(to) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrderStore) UpdateStatus(_ context.Context, id gocql.UUID, status string, history []models.StatusEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return gocql.ErrNotFound
	}
	o.Status = status
	o.StatusHistory = history
	return nil
}

func (s *memOrderStore) SetEmailStatus(_ context.Context, id gocql.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return gocql.ErrNotFound
	}
	o.EmailStatus = status
	return nil
}

// --- avis ---

type memReviewStore struct {
	mu      sync.Mutex
	reviews map[gocql.UUID][]models.Review
}

func newMemReviewStore() *memReviewStore {
	return &memReviewStore{reviews: make(map[gocql.UUID][]models.Review)}
}

func (s *memReviewStore) Insert(_ context.Context, r *models.Review) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reviews[r.ProductID] {
		if existing.UserID == r.UserID {
			return false, nil
		}
	}
	s.reviews[r.ProductID] = append(s.reviews[r.ProductID], *r)
	return true, nil
}

func (s *memReviewStore) Get(_ context.Context, productID, reviewID gocql.UUID) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews[productID] {
		if r.ID == reviewID {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memReviewStore) Delete(_ context.Context, productID, reviewID gocql.UUID, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.reviews[productID][:0]
	for _, r := range s.reviews[productID] {
		if r.ID != reviewID {
			kept = append(kept, r)
		}
	}
	s.reviews[productID] = kept
	return nil
}

func (s *memReviewStore) ListByProduct(_ context.Context, productID gocql.UUID) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Review(nil), s.reviews[productID]...), nil
}
