package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craftcollective/craft-market/pkg/auth"
	"github.com/craftcollective/craft-market/pkg/config"
	"github.com/craftcollective/craft-market/pkg/enums"
	"github.com/google/uuid"
)

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "craft-collective", ExpirationMinutes: 60}
}

func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Message
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT(), nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "Authorization header missing" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT(), nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "Invalid or expired token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := testJWT()
	token := mintTestToken(t, cfg, time.Now().Add(-2*time.Hour), enums.RoleCustomer, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	Auth(cfg, nil)(okHandler()).ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	cfg := testJWT()
	vendorID := "vndr-ada-1a2b3"
	token := mintTestToken(t, cfg, time.Now(), enums.RoleVendor, &vendorID)

	var captured auth.Identity
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.ID == "" {
		t.Fatal("expected user id in context")
	}
	if captured.Role != enums.RoleVendor {
		t.Fatalf("expected role vendor got %s", captured.Role)
	}
	if captured.VendorID != vendorID {
		t.Fatalf("expected vendor %s got %s", vendorID, captured.VendorID)
	}
}

func TestRequireRole(t *testing.T) {
	cfg := testJWT()
	chain := func(h http.Handler) http.Handler {
		return Auth(cfg, nil)(RequireRole(nil, enums.RoleVendor)(h))
	}

	customer := mintTestToken(t, cfg, time.Now(), enums.RoleCustomer, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+customer)
	resp := httptest.NewRecorder()
	chain(okHandler()).ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if msg := errorMessage(t, resp); msg != "Access denied for this role" {
		t.Fatalf("unexpected message %q", msg)
	}

	vendor := mintTestToken(t, cfg, time.Now(), enums.RoleVendor, nil)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+vendor)
	resp = httptest.NewRecorder()
	chain(okHandler()).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	resp := httptest.NewRecorder()
	RequireRole(nil, enums.RoleCustomer)(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, now time.Time, role enums.Role, vendorID *string) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg, now, auth.AccessTokenPayload{
		UserID:   uuid.NewString(),
		Email:    "ada@x.com",
		Name:     "Ada",
		Role:     role,
		VendorID: vendorID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
