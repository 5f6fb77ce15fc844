package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gocql/gocql"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

const (
	UserCacheTTL    = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

// GetProductFromCache récupère un produit depuis Redis, sinon depuis
// ScyllaDB (et le remet en cache).
func GetProductFromCache(ctx context.Context, products store.ProductStore, productID string) (*models.Product, error) {
	key := "product:" + productID

	// 1. Essayer le cache Redis
	if database.Redis != nil {
		data, err := database.Redis.Get(ctx, key).Result()
		if err == nil {
			var product models.Product
			if json.Unmarshal([]byte(data), &product) == nil {
				return &product, nil
			}
		}
	}

	// 2. Récupérer de ScyllaDB
	pid, err := gocql.ParseUUID(productID)
	if err != nil {
		return nil, err
	}
	product, err := products.Get(ctx, pid)
	if err != nil || product == nil {
		return product, err
	}

	// 3. Mettre en cache
	if database.Redis != nil {
		jsonData, _ := json.Marshal(product)
		database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)
	}

	return product, nil
}

// InvalidateProductCache invalide le cache d'un produit (après
// création, mise à jour ou suppression).
func InvalidateProductCache(productID string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), "product:"+productID)
}

// GetUserFromCache récupère un utilisateur depuis Redis ou ScyllaDB.
func GetUserFromCache(ctx context.Context, users store.UserStore, userID string) (*models.User, error) {
	key := "user:" + userID

	// 1. Essayer le cache Redis
	if database.Redis != nil {
		data, err := database.Redis.Get(ctx, key).Result()
		if err == nil {
			var user models.User
			if json.Unmarshal([]byte(data), &user) == nil {
				return &user, nil
			}
		}
	}

	// 2. Récupérer de ScyllaDB
	user, err := users.Get(ctx, userID)
	if err != nil || user == nil {
		return user, err
	}

	// 3. Mettre en cache
	if database.Redis != nil {
		jsonData, _ := json.Marshal(user)
		database.Redis.Set(ctx, key, jsonData, UserCacheTTL)
	}

	return user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur.
func InvalidateUserCache(userID string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), "user:"+userID)
}
