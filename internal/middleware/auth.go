package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"spendly-be/internal/cache"
	"spendly-be/internal/entities"
	"spendly-be/internal/jwt"
	"spendly-be/internal/models"
	"spendly-be/internal/repository"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextUserIDKey    = "user_id"
	ContextUserEmailKey = "user_email"
)

const userCacheTTL = 5 * time.Minute

// AuthMiddleware validates the bearer token and resolves the authenticated
// user, putting the user's ID and email into the gin context. The user
// lookup goes through the cache when one is configured. cacheClient may be
// nil.
func AuthMiddleware(jwtService *jwt.JWTService, userRepo repository.UserRepository, cacheClient cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		email, err := jwtService.ExtractEmail(tokenStr)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}
		if !jwtService.IsTokenValid(tokenStr, email) {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := lookupUser(c, userRepo, cacheClient, email)
		if err != nil {
			abortUnauthorized(c, "unknown user")
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserEmailKey, user.Email)
		c.Next()
	}
}

func lookupUser(c *gin.Context, userRepo repository.UserRepository, cacheClient cache.Cache, email string) (*entities.User, error) {
	ctx := c.Request.Context()
	cacheKey := "auth:user:" + email

	if cacheClient != nil {
		var cached entities.User
		if err := cacheClient.GetJSON(ctx, cacheKey, &cached); err == nil && cached.ID != "" {
			return &cached, nil
		}
	}

	user, err := userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}

	if cacheClient != nil {
		cacheClient.SetJSON(ctx, cacheKey, user, userCacheTTL)
	}
	return user, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusUnauthorized,
		Error:     http.StatusText(http.StatusUnauthorized),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}
