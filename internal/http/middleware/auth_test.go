package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/voxcrm/backend/internal/models"
)

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	claims := Claims{
		UserID: "user-1",
		Email:  "jane@x.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func authRouter(secret string, roles ...string) *gin.Engine {
	r := gin.New()
	group := r.Group("")
	group.Use(Authenticate(secret))
	if len(roles) > 0 {
		group.Use(Authorize(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		claims, _ := Principal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return r
}

func TestAuthenticateValidToken(t *testing.T) {
	r := authRouter("secret")
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", models.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAuthenticateRejectsMissingAndForgedTokens(t *testing.T) {
	r := authRouter("secret")

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	req, _ = http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", models.RoleUser))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestAuthorizeRequiresRole(t *testing.T) {
	r := authRouter("secret", models.RoleAdmin)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", models.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}

	req, _ = http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", models.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestWebhookSecret(t *testing.T) {
	r := gin.New()
	r.Use(WebhookSecret("hook-secret"))
	r.POST("/hook", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	req, _ := http.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set(WebhookSecretHeader, "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", w.Code)
	}

	req, _ = http.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set(WebhookSecretHeader, "hook-secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for correct secret, got %d", w.Code)
	}
}

func TestWebhookSecretUnconfiguredRejectsAll(t *testing.T) {
	r := gin.New()
	r.Use(WebhookSecret(""))
	r.POST("/hook", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	req, _ := http.NewRequest(http.MethodPost, "/hook", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no secret configured, got %d", w.Code)
	}
}
