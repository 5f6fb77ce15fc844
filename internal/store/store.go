package store

import (
	"context"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// Les lectures renvoient (nil, nil) quand l'entité n'existe pas : la
// traduction en erreur typée appartient à la couche services. Les mises
// à jour ciblant une ligne absente renvoient gocql.ErrNotFound.

type ProductStore interface {
	Get(ctx context.Context, id gocql.UUID) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error)
	All(ctx context.Context) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id gocql.UUID) error

	// DecrementStock décrémente le stock de façon atomique (LWT côté
	// Scylla) : renvoie false sans rien modifier si le stock est
	// insuffisant. Deux achats concurrents de la dernière unité ne
	// peuvent pas réussir tous les deux.
	DecrementStock(ctx context.Context, id gocql.UUID, by int) (bool, error)

	// IncrementStock rend des unités au stock, typiquement pour
	// compenser un décrément dont la suite a échoué.
	IncrementStock(ctx context.Context, id gocql.UUID, by int) error

	UpdateRating(ctx context.Context, id gocql.UUID, rating float64, count int) error
}

type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	All(ctx context.Context) ([]models.User, error)
}

type CartStore interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)

	// Update charge le panier, applique fn, puis sauvegarde. Les
	// mutations d'un même utilisateur sont sérialisées (WATCH Redis),
	// deux add/remove concurrents ne se perdent pas.
	Update(ctx context.Context, userID string, fn func(cart *models.Cart) error) (*models.Cart, error)

	Clear(ctx context.Context, userID string) error
}

type WishlistStore interface {
	Get(ctx context.Context, userID string) (*models.Wishlist, error)
	Has(ctx context.Context, userID, productID string) (bool, error)
	Add(ctx context.Context, item models.WishlistItem) error
	Remove(ctx context.Context, userID, productID string) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id gocql.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id gocql.UUID, status string, history []models.StatusEntry) error
	SetEmailStatus(ctx context.Context, id gocql.UUID, status string) error
}

type ReviewStore interface {
	// Insert réserve le couple (produit, utilisateur) par une écriture
	// conditionnelle avant d'écrire l'avis : renvoie false sans rien
	// modifier si cet utilisateur a déjà noté ce produit. Deux dépôts
	// concurrents du même utilisateur ne peuvent pas réussir tous les
	// deux.
	Insert(ctx context.Context, r *models.Review) (bool, error)
	Get(ctx context.Context, productID, reviewID gocql.UUID) (*models.Review, error)

	// Delete supprime l'avis et libère la réservation (produit,
	// utilisateur), autorisant un nouvel avis.
	Delete(ctx context.Context, productID, reviewID gocql.UUID, userID string) error

	ListByProduct(ctx context.Context, productID gocql.UUID) ([]models.Review, error)
}
