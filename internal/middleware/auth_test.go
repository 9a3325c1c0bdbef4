package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"spendly-be/internal/entities"
	"spendly-be/internal/jwt"
	"spendly-be/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*entities.User
}

func (f *fakeUserRepo) Create(email, passwordHash, firstName, lastName string) (*entities.User, error) {
	panic("not used")
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	panic("not used")
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func newAuthTestRouter(t *testing.T, ttl time.Duration) (*gin.Engine, *jwt.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	secret := base64.StdEncoding.EncodeToString([]byte("test-secret-key-0123456789abcdef"))
	jwtService, err := jwt.NewJWTService(secret, ttl)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}

	userRepo := &fakeUserRepo{users: map[string]*entities.User{
		"alice@example.com": {ID: "user-1", Email: "alice@example.com"},
	}}

	router := gin.New()
	router.Use(AuthMiddleware(jwtService, userRepo, nil))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(ContextUserIDKey),
			"email":   c.GetString(ContextUserEmailKey),
		})
	})
	return router, jwtService
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t, time.Hour)

	if rr := get(router, ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want 401", rr.Code)
	}
	if rr := get(router, "Basic abc"); rr.Code != http.StatusUnauthorized {
		t.Errorf("non-bearer scheme: got %d, want 401", rr.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, _ := newAuthTestRouter(t, time.Hour)

	if rr := get(router, "Bearer garbage"); rr.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got %d, want 401", rr.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)

	token, err := jwtService.GenerateToken("alice@example.com", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rr := get(router, "Bearer "+token)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body: %s", rr.Code, rr.Body.String())
	}
	if body := rr.Body.String(); !strings.Contains(body, "user-1") {
		t.Errorf("expected resolved user id in body, got: %s", body)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	// Negative TTL issues an already-expired token
	router, jwtService := newAuthTestRouter(t, -time.Hour)

	token, err := jwtService.GenerateToken("alice@example.com", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if rr := get(router, "Bearer "+token); rr.Code != http.StatusUnauthorized {
		t.Errorf("expired token: got %d, want 401", rr.Code)
	}
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	router, jwtService := newAuthTestRouter(t, time.Hour)

	token, err := jwtService.GenerateToken("ghost@example.com", nil)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if rr := get(router, "Bearer "+token); rr.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: got %d, want 401", rr.Code)
	}
}
