package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"astra_back_end/internal/database"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
	APIMaxRequests   = 100
	APICooldown      = 1 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		cooldownKey := "login_cooldown:" + input.Email
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		key := "login_attempts:" + input.Email
		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de tentatives, compte temporairement bloqué"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RecordLoginFailure incrémente le compteur de tentatives échouées.
func RecordLoginFailure(email string) {
	ctx := context.Background()
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, "login_attempts:"+email)
	pipe.Expire(ctx, "login_attempts:"+email, LoginCooldown)
	if _, err := pipe.Exec(ctx); err == nil && incr.Val() >= LoginMaxAttempts {
		database.Redis.Set(ctx, "login_cooldown:"+email, "1", LoginCooldown)
	}
}

// APIRateLimit limite le débit global par IP sur les routes publiques.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "api_rate:" + c.ClientIP()

		pipe := database.Redis.Pipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, APICooldown)
		if _, err := pipe.Exec(ctx); err != nil {
			// Redis indisponible : on laisse passer plutôt que de bloquer le site
			c.Next()
			return
		}

		if incr.Val() > APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de requêtes, ralentissez"})
			c.Abort()
			return
		}

		c.Next()
	}
}
