package services

import "errors"

// Erreurs métier renvoyées par le cœur. Les handlers les traduisent en
// codes HTTP avec errors.Is, rien n'est avalé silencieusement.
var (
	ErrNotFound        = errors.New("ressource introuvable")
	ErrOutOfStock      = errors.New("produit en rupture de stock")
	ErrEmptyCart       = errors.New("panier vide")
	ErrUnauthenticated = errors.New("utilisateur non authentifié")
	ErrForbidden       = errors.New("accès refusé")
	ErrInvalidRating   = errors.New("la note doit être comprise entre 1 et 5")
	ErrDuplicateReview = errors.New("avis déjà déposé pour ce produit")
	ErrValidation      = errors.New("données invalides")
)
