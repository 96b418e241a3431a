package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhinandan-jain01/NearMart/internal/config"
	"github.com/abhinandan-jain01/NearMart/internal/models"
	"github.com/abhinandan-jain01/NearMart/internal/repository"
	"github.com/abhinandan-jain01/NearMart/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

type stubCustomerRepo struct {
	customers map[uint]*models.Customer
}

func (s *stubCustomerRepo) GetByID(id uint) (*models.Customer, error) {
	if s.customers == nil {
		return nil, nil
	}
	return s.customers[id], nil
}

func (s *stubCustomerRepo) GetByEmail(email string) (*models.Customer, error) {
	return nil, errors.New("not implemented")
}

func (s *stubCustomerRepo) Create(item *models.Customer) error { return errors.New("not implemented") }
func (s *stubCustomerRepo) Update(item *models.Customer) error { return errors.New("not implemented") }
func (s *stubCustomerRepo) WithTx(tx *gorm.DB) repository.CustomerRepository {
	return s
}

func decodeStatusCode(t *testing.T, body []byte) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestCustomerJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CustomerJWTAuthMiddleware("", nil))
	r.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	if got := decodeStatusCode(t, w.Body.Bytes()); got != 401 {
		t.Fatalf("status_code want 401 got %d", got)
	}
}

func TestCustomerJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	jwtCfg := config.JWTConfig{SecretKey: "test-secret-for-customer-tokens", ExpireHours: 1}
	repo := &stubCustomerRepo{customers: map[uint]*models.Customer{
		7: {ID: 7, Email: "asha@example.com"},
	}}

	r := gin.New()
	r.Use(CustomerJWTAuthMiddleware(jwtCfg.SecretKey, repo))
	r.GET("/cart", func(c *gin.Context) {
		id, _ := c.Get("customer_id")
		c.JSON(http.StatusOK, gin.H{"customer_id": id})
	})

	token, err := service.IssueCustomerToken(jwtCfg, 7, "asha@example.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d, body %s", w.Code, w.Body.String())
	}
	var resp map[string]float64
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["customer_id"] != 7 {
		t.Fatalf("customer_id want 7 got %v", resp["customer_id"])
	}

	// Unknown account with a valid signature is still rejected.
	stranger, err := service.IssueCustomerToken(jwtCfg, 99, "ghost@example.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req2.Header.Set("Authorization", "Bearer "+stranger)
	r.ServeHTTP(w2, req2)
	if got := decodeStatusCode(t, w2.Body.Bytes()); got != 401 {
		t.Fatalf("status_code want 401 got %d", got)
	}

	// Wrong signing key.
	forged, err := service.IssueCustomerToken(config.JWTConfig{SecretKey: "another-secret", ExpireHours: 1}, 7, "asha@example.com")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req3.Header.Set("Authorization", "Bearer "+forged)
	r.ServeHTTP(w3, req3)
	if got := decodeStatusCode(t, w3.Body.Bytes()); got != 401 {
		t.Fatalf("status_code want 401 got %d", got)
	}

	// Malformed header.
	w4 := httptest.NewRecorder()
	req4 := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req4.Header.Set("Authorization", "Token "+token)
	r.ServeHTTP(w4, req4)
	if got := decodeStatusCode(t, w4.Body.Bytes()); got != 401 {
		t.Fatalf("status_code want 401 got %d", got)
	}
}
