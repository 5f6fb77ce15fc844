package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande. Le passage est "forward-only" par convention,
// l'historique garde la trace de chaque transition.
const (
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// Statuts d'envoi de la facture par e-mail.
const (
	EmailPending = "pending"
	EmailSent    = "sent"
	EmailFailed  = "failed"
)

// Order est un enregistrement d'achat immuable : les champs client et produit
// sont dénormalisés au moment de l'achat pour l'exactitude historique, et le
// profit est figé à la création (price - cost), jamais recalculé. Seuls le
// statut, son historique et le statut e-mail évoluent ensuite. Une commande
// ne se supprime jamais, c'est la piste d'audit du système.
type Order struct {
	ID            gocql.UUID    `json:"id" db:"order_id"`
	UserID        string        `json:"user_id" db:"user_id"`
	ProductID     gocql.UUID    `json:"product_id" db:"product_id"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CustomerEmail string        `json:"customer_email" db:"customer_email"`
	ProductName   string        `json:"product_name" db:"product_name"`
	Price         float64       `json:"price" db:"price"`
	Cost          float64       `json:"cost" db:"cost"`
	Profit        float64       `json:"profit" db:"profit"`
	Quantity      int           `json:"quantity" db:"quantity"`
	Status        string        `json:"status" db:"status"`
	StatusHistory []StatusEntry `json:"status_history" db:"status_history"`
	EmailStatus   string        `json:"email_status" db:"email_status"`
	PurchaseDate  time.Time     `json:"purchase_date" db:"purchase_date"`
}

type StatusEntry struct {
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note"`
}
