package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"velora_back_end/internal/models"
)

const (
	cartTTL          = 30 * 24 * time.Hour
	cartTxMaxRetries = 10
)

// RedisCartStore garde le panier en JSON sous la clé cart:<userID>.
// Les mutations passent par WATCH/MULTI : deux requêtes concurrentes du
// même utilisateur ne s'écrasent pas, la perdante est rejouée.
type RedisCartStore struct {
	client *redis.Client
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func decodeCart(userID, data string) (*models.Cart, error) {
	cart := &models.Cart{UserID: userID, Items: []models.CartItem{}}
	if data != "" {
		if err := json.Unmarshal([]byte(data), &cart.Items); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

func (s *RedisCartStore) Get(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCart(userID, data)
}

func (s *RedisCartStore) Update(ctx context.Context, userID string, fn func(cart *models.Cart) error) (*models.Cart, error) {
	key := cartKey(userID)
	var result *models.Cart

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		cart, err := decodeCart(userID, data)
		if err != nil {
			return err
		}

		if err := fn(cart); err != nil {
			return err
		}

		payload, err := json.Marshal(cart.Items)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, cartTTL)
			return nil
		})
		if err != nil {
			return err
		}
		result = cart
		return nil
	}

	for attempt := 0; attempt < cartTxMaxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Mutation concurrente du même panier, on rejoue.
			continue
		}
		return nil, err
	}
	return nil, errors.New("panier: trop de mutations concurrentes")
}

func (s *RedisCartStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}
