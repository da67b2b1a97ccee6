package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cctv-service/internal/middleware"
	"cctv-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	mgr, err := jwt.NewManager(jwt.Config{Secret: "test-secret", Issuer: "cctv-service", TTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build JWT manager: %v", err)
	}

	authMw := middleware.NewAuthMiddleware(mgr)
	r := gin.New()

	r.GET("/me", authMw.Auth(), func(c *gin.Context) {
		id, ok := middleware.GetIdentityID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"identity_id": id, "role": c.GetString("role")})
	})
	r.GET("/admin", authMw.Auth(), authMw.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/staff", authMw.Auth(), authMw.RequireRole("admin", "technician"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r, mgr
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	r, _ := newRouter(t)
	if w := get(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r, _ := newRouter(t)
	if w := get(r, "/me", "not-a-real-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidTokenSetsContext(t *testing.T) {
	r, mgr := newRouter(t)
	token, _, err := mgr.Generate(42, "technician")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	w := get(r, "/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	r, mgr := newRouter(t)

	adminToken, _, err := mgr.Generate(1, "admin")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	techToken, _, err := mgr.Generate(2, "technician")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"admin reaches admin route", "/admin", adminToken, http.StatusOK},
		{"technician blocked from admin route", "/admin", techToken, http.StatusForbidden},
		{"admin reaches staff route", "/staff", adminToken, http.StatusOK},
		{"technician reaches staff route", "/staff", techToken, http.StatusOK},
		{"anonymous blocked from staff route", "/staff", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := get(r, tt.path, tt.token); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
