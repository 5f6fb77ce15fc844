package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
)

const (
	apiMaxRequests = 100 // par fenêtre, par IP
	apiWindow      = 1 * time.Minute
)

// APIRateLimit limite les requêtes par IP sur une fenêtre fixe Redis.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_requests:" + c.ClientIP()

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis indisponible : on laisse passer plutôt que de
			// bloquer tout le trafic.
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, apiWindow)
		}

		if count > apiMaxRequests {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de requêtes. Réessayez dans %d secondes", int(ttl.Seconds())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", apiMaxRequests-count))
		c.Next()
	}
}
