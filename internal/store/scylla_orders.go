package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// ScyllaOrderStore persiste le registre des commandes dans le keyspace
// orders. Chaque commande est écrite dans orders (accès par id) et dans
// orders_by_user (accès par utilisateur, tri par date d'achat). Rien
// n'est jamais supprimé, le registre est la piste d'audit.
type ScyllaOrderStore struct{}

func NewScyllaOrderStore() *ScyllaOrderStore {
	return &ScyllaOrderStore{}
}

const orderColumns = `order_id, user_id, product_id, customer_name, customer_email, product_name, price, cost, profit, quantity, status, status_history, email_status, purchase_date`

// L'historique de statut est stocké en JSON dans une colonne texte.
func marshalHistory(history []models.StatusEntry) string {
	data, _ := json.Marshal(history)
	return string(data)
}

func unmarshalHistory(data string) []models.StatusEntry {
	var history []models.StatusEntry
	if data != "" {
		_ = json.Unmarshal([]byte(data), &history)
	}
	return history
}

func scanOrder(scan func(dest ...interface{}) error) (*models.Order, error) {
	var o models.Order
	var history string
	err := scan(&o.ID, &o.UserID, &o.ProductID, &o.CustomerName, &o.CustomerEmail,
		&o.ProductName, &o.Price, &o.Cost, &o.Profit, &o.Quantity,
		&o.Status, &history, &o.EmailStatus, &o.PurchaseDate)
	if err != nil {
		return nil, err
	}
	o.StatusHistory = unmarshalHistory(history)
	return &o, nil
}

func (s *ScyllaOrderStore) Insert(ctx context.Context, o *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	history := marshalHistory(o.StatusHistory)
	if err := session.Query(`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.ProductID, o.CustomerName, o.CustomerEmail,
		o.ProductName, o.Price, o.Cost, o.Profit, o.Quantity,
		o.Status, history, o.EmailStatus, o.PurchaseDate).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return session.Query(`INSERT INTO orders_by_user (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.ProductID, o.CustomerName, o.CustomerEmail,
		o.ProductName, o.Price, o.Cost, o.Profit, o.Quantity,
		o.Status, history, o.EmailStatus, o.PurchaseDate).WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) Get(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	query := session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id).WithContext(ctx)
	o, err := scanOrder(query.Scan)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *ScyllaOrderStore) iterOrders(iter *gocql.Iter) ([]models.Order, error) {
	var orders []models.Order
	var o models.Order
	var history string
	for iter.Scan(&o.ID, &o.UserID, &o.ProductID, &o.CustomerName, &o.CustomerEmail,
		&o.ProductName, &o.Price, &o.Cost, &o.Profit, &o.Quantity,
		&o.Status, &history, &o.EmailStatus, &o.PurchaseDate) {
		o.StatusHistory = unmarshalHistory(history)
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *ScyllaOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	iter := session.Query(`SELECT `+orderColumns+` FROM orders_by_user WHERE user_id = ?`, userID).
		WithContext(ctx).Iter()
	return s.iterOrders(iter)
}

func (s *ScyllaOrderStore) All(ctx context.Context) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	iter := session.Query(`SELECT ` + orderColumns + ` FROM orders`).WithContext(ctx).Iter()
	return s.iterOrders(iter)
}

func (s *ScyllaOrderStore) ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}
	iter := session.Query(`SELECT `+orderColumns+` FROM orders WHERE purchase_date >= ? AND purchase_date < ? ALLOW FILTERING`,
		from, to).WithContext(ctx).Iter()
	return s.iterOrders(iter)
}

func (s *ScyllaOrderStore) UpdateStatus(ctx context.Context, id gocql.UUID, status string, history []models.StatusEntry) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return gocql.ErrNotFound
	}

	data := marshalHistory(history)
	if err := session.Query(`UPDATE orders SET status = ?, status_history = ? WHERE order_id = ?`,
		status, data, id).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return session.Query(`UPDATE orders_by_user SET status = ?, status_history = ? WHERE user_id = ? AND purchase_date = ? AND order_id = ?`,
		status, data, order.UserID, order.PurchaseDate, id).WithContext(ctx).Exec()
}

func (s *ScyllaOrderStore) SetEmailStatus(ctx context.Context, id gocql.UUID, status string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return gocql.ErrNotFound
	}

	if err := session.Query(`UPDATE orders SET email_status = ? WHERE order_id = ?`,
		status, id).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return session.Query(`UPDATE orders_by_user SET email_status = ? WHERE user_id = ? AND purchase_date = ? AND order_id = ?`,
		status, order.UserID, order.PurchaseDate, id).WithContext(ctx).Exec()
}
