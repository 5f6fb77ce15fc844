package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

const casMaxRetries = 5

// ScyllaProductStore persiste le catalogue dans le keyspace products.
type ScyllaProductStore struct{}

func NewScyllaProductStore() *ScyllaProductStore {
	return &ScyllaProductStore{}
}

const productColumns = `product_id, name, description, price, cost, stock, low_stock_threshold, rating, review_count, category, image_url, created_at, updated_at`

func scanProduct(scan func(dest ...interface{}) error) (*models.Product, error) {
	var p models.Product
	err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Stock,
		&p.LowStockThreshold, &p.Rating, &p.ReviewCount, &p.Category,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ScyllaProductStore) Get(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	query := session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).WithContext(ctx)
	p, err := scanProduct(query.Scan)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ScyllaProductStore) All(ctx context.Context) ([]models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).WithContext(ctx).Iter()
	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Stock,
		&p.LowStockThreshold, &p.Rating, &p.ReviewCount, &p.Category,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt) {
		products = append(products, p)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return products, nil
}

// List filtre, trie et pagine en mémoire : le catalogue se parcourt en
// un seul scan, Scylla ne portant aucun index secondaire ici.
func (s *ScyllaProductStore) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, 0, err
	}
	items, total := applyProductFilter(products, filter)
	return items, total, nil
}

func applyProductFilter(products []models.Product, filter models.ProductFilter) ([]models.Product, int) {
	filtered := products[:0]
	search := strings.ToLower(filter.Search)
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	switch filter.Sort {
	case "price-asc":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "price-desc":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case "rating":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	default: // plus récents d'abord
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })
	}

	total := len(filtered)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 12
	}
	start := (page - 1) * perPage
	if start >= total {
		return []models.Product{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return filtered[start:end], total
}

func (s *ScyllaProductStore) Categories(ctx context.Context) ([]string, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *ScyllaProductStore) Insert(ctx context.Context, p *models.Product) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	return session.Query(`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Cost, p.Stock,
		p.LowStockThreshold, p.Rating, p.ReviewCount, p.Category,
		p.ImageURL, p.CreatedAt, p.UpdatedAt).WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) Update(ctx context.Context, p *models.Product) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	return session.Query(`UPDATE products SET name = ?, description = ?, price = ?, cost = ?, stock = ?, low_stock_threshold = ?, category = ?, image_url = ?, updated_at = ? WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Cost, p.Stock,
		p.LowStockThreshold, p.Category, p.ImageURL, time.Now(), p.ID).WithContext(ctx).Exec()
}

func (s *ScyllaProductStore) Delete(ctx context.Context, id gocql.UUID) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	return session.Query(`DELETE FROM products WHERE product_id = ?`, id).WithContext(ctx).Exec()
}

// DecrementStock fait la vérification et la décrémentation en une seule
// écriture conditionnelle (LWT) : UPDATE ... IF stock = ?. En cas de
// course sur la même ligne, on relit et on retente.
func (s *ScyllaProductStore) DecrementStock(ctx context.Context, id gocql.UUID, by int) (bool, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return false, err
	}

	for attempt := 0; attempt < casMaxRetries; attempt++ {
		var stock int
		err := session.Query(`SELECT stock FROM products WHERE product_id = ?`, id).WithContext(ctx).Scan(&stock)
		if errors.Is(err, gocql.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if stock < by {
			return false, nil
		}

		var previous int
		applied, err := session.Query(`UPDATE products SET stock = ? WHERE product_id = ? IF stock = ?`,
			stock-by, id, stock).WithContext(ctx).ScanCAS(&previous)
		if err != nil {
			return false, err
		}
		if applied {
			return true, nil
		}
		// Écriture concurrente entre la lecture et le CAS, on retente.
	}
	return false, fmt.Errorf("décrément stock %s: trop de conflits concurrents", id)
}

// IncrementStock rend des unités au stock, via la même écriture
// conditionnelle que DecrementStock pour ne pas écraser un achat
// concurrent.
func (s *ScyllaProductStore) IncrementStock(ctx context.Context, id gocql.UUID, by int) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	for attempt := 0; attempt < casMaxRetries; attempt++ {
		var stock int
		err := session.Query(`SELECT stock FROM products WHERE product_id = ?`, id).WithContext(ctx).Scan(&stock)
		if errors.Is(err, gocql.ErrNotFound) {
			// Produit supprimé entre-temps, rien à restaurer.
			return nil
		}
		if err != nil {
			return err
		}

		var previous int
		applied, err := session.Query(`UPDATE products SET stock = ? WHERE product_id = ? IF stock = ?`,
			stock+by, id, stock).WithContext(ctx).ScanCAS(&previous)
		if err != nil {
			return err
		}
		if applied {
			return nil
		}
	}
	return fmt.Errorf("restauration stock %s: trop de conflits concurrents", id)
}

func (s *ScyllaProductStore) UpdateRating(ctx context.Context, id gocql.UUID, rating float64, count int) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}
	return session.Query(`UPDATE products SET rating = ?, review_count = ?, updated_at = ? WHERE product_id = ?`,
		rating, count, time.Now(), id).WithContext(ctx).Exec()
}
