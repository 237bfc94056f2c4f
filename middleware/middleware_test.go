package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cafe-ordering-api/models"
	"cafe-ordering-api/session"

	"github.com/gin-gonic/gin"
)

var secret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, role models.UserRole) string {
	t.Helper()
	tok, err := GenerateToken(secret, &models.User{ID: 7, Username: "priya", Role: role})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func TestAuthAndRoles(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/staff", AuthRequired(secret), RoleRequired(models.RoleAdmin, models.RoleStaff), func(c *gin.Context) {
		c.String(http.StatusOK, GetUsername(c))
	})
	r.GET("/admin", AuthRequired(secret), RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	otherSecret, err := GenerateToken([]byte("other"), &models.User{Username: "x", Role: models.RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"no_header", "/staff", "", http.StatusUnauthorized},
		{"not_bearer", "/staff", "Basic abc", http.StatusUnauthorized},
		{"garbage", "/staff", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong_secret", "/staff", "Bearer " + otherSecret, http.StatusUnauthorized},
		{"staff_ok", "/staff", "Bearer " + token(t, models.RoleStaff), http.StatusOK},
		{"staff_forbidden_admin", "/admin", "Bearer " + token(t, models.RoleStaff), http.StatusForbidden},
		{"admin_ok", "/admin", "Bearer " + token(t, models.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.name == "staff_ok" && w.Body.String() != "priya" {
				t.Fatalf("username = %q", w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if id := w.Header().Get(RequestIDHeader); id == "" || id != w.Body.String() {
		t.Fatalf("generated id %q, body %q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatal("caller request id should be echoed")
	}
}

func TestSessionIssuesAndReusesID(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	r := gin.New()
	r.Use(Session(store))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetSession(c).ID) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(SessionHeader)
	if id == "" {
		t.Fatal("expected a session id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != id || store.Len() != 1 {
		t.Fatalf("session not reused: %q, %d sessions", w.Body.String(), store.Len())
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(CORS())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
}
