package store

import (
	"context"
	"errors"

	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// ScyllaUserStore persiste l'annuaire utilisateurs dans le keyspace users,
// avec la table de correspondance users_by_email.
type ScyllaUserStore struct{}

func NewScyllaUserStore() *ScyllaUserStore {
	return &ScyllaUserStore{}
}

func (s *ScyllaUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	var u models.User
	u.ID = id
	err = session.Query(`SELECT name, email, password, role, created_at FROM users WHERE user_id = ?`, id).
		WithContext(ctx).Scan(&u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *ScyllaUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	var userID string
	err = session.Query(`SELECT user_id FROM users_by_email WHERE email = ?`, email).
		WithContext(ctx).Scan(&userID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *ScyllaUserStore) Insert(ctx context.Context, u *models.User) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	if err := session.Query(`INSERT INTO users (user_id, name, email, password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Password, u.Role, u.CreatedAt).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
		u.Email, u.ID).WithContext(ctx).Exec()
}

func (s *ScyllaUserStore) All(ctx context.Context) ([]models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT user_id, name, email, role, created_at FROM users`).WithContext(ctx).Iter()
	var users []models.User
	var u models.User
	for iter.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt) {
		users = append(users, u)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return users, nil
}
