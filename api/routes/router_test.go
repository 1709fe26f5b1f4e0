package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftcollective/craft-market/internal/accounts"
	"github.com/craftcollective/craft-market/internal/blog"
	"github.com/craftcollective/craft-market/internal/customizations"
	"github.com/craftcollective/craft-market/internal/orders"
	"github.com/craftcollective/craft-market/internal/products"
	"github.com/craftcollective/craft-market/internal/vendors"
	"github.com/craftcollective/craft-market/pkg/config"
	"github.com/craftcollective/craft-market/pkg/logger"
	"github.com/craftcollective/craft-market/pkg/metrics"
	"github.com/craftcollective/craft-market/pkg/store"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *store.Store
	limiter *countingLimiter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Env: config.AppEnvProduction},
		JWT: config.JWTConfig{Secret: "router-secret", Issuer: "craft-collective", ExpirationMinutes: 720},
		Password: config.PasswordConfig{
			ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow: time.Minute, LoginIPLimit: 100, LoginEmailLimit: 3,
			RegisterWindow: time.Minute, RegisterIPLimit: 100, RegisterEmailLimit: 100,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	productsRepo := products.NewRepository(s)
	vendorsRepo := vendors.NewRepository(s)
	accountsSvc, err := accounts.NewService(accounts.ServiceParams{
		Accounts:       accounts.NewRepository(s),
		Vendors:        vendorsRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	require.NoError(t, err)
	vendorsSvc, err := vendors.NewService(vendorsRepo, productsRepo)
	require.NoError(t, err)
	productsSvc, err := products.NewService(productsRepo)
	require.NoError(t, err)
	customizationsSvc, err := customizations.NewService(customizations.NewRepository(s), productsRepo)
	require.NoError(t, err)
	ordersSvc, err := orders.NewService(orders.NewRepository(s), productsRepo)
	require.NoError(t, err)
	blogSvc, err := blog.NewService(s)
	require.NoError(t, err)

	limiter := &countingLimiter{counts: map[string]int64{}}
	handler := NewRouter(cfg, logger.Nop(), Services{
		Accounts:       accountsSvc,
		Vendors:        vendorsSvc,
		Products:       productsSvc,
		Customizations: customizationsSvc,
		Orders:         ordersSvc,
		Blog:           blogSvc,
		RateLimiter:    limiter,
		Metrics:        metrics.NewHTTPMetrics(prometheus.NewRegistry()),
	})
	return &testServer{t: t, handler: handler, store: s, limiter: limiter}
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	reader := bytes.NewReader(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Role     string  `json:"role"`
		VendorID *string `json:"vendorId"`
	} `json:"user"`
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (ts *testServer) register(name, email, role string) authBody {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "longenough", "role": role,
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authBody](ts.t, rec)
}

func (ts *testServer) seedProducts(items ...products.Product) {
	ts.t.Helper()
	_, err := store.NewCollection[products.Product](ts.store, store.Products).Save(context.Background(), items)
	require.NoError(ts.t, err)
}

func TestRegisterCustomerExample(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ada", "email": "Ada@x.com", "password": "longenough", "role": "customer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	raw := decode[struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}](t, rec)
	assert.NotEmpty(t, raw.Token)
	assert.Equal(t, "ada@x.com", raw.User["email"])
	assert.Equal(t, "customer", raw.User["role"])
	assert.Contains(t, raw.User, "vendorId")
	assert.Nil(t, raw.User["vendorId"])
	assert.NotContains(t, raw.User, "passwordHash")
	assert.NotContains(t, rec.Body.String(), "argon2id")

	again := ts.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ada", "email": "ADA@x.com", "password": "longenough",
	})
	assert.Equal(t, http.StatusBadRequest, again.Code)
	assert.Equal(t, "Email is already registered", decode[errorBody](t, again).Message)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		body map[string]any
		msg  string
	}{
		{map[string]any{"email": "a@b.co", "password": "longenough"}, "Name is required"},
		{map[string]any{"name": "A", "email": "nope", "password": "longenough"}, "Email is invalid"},
		{map[string]any{"name": "A", "email": "a@b.co", "password": "short"}, "Password must be at least 8 characters long"},
	}
	for _, tc := range cases {
		rec := ts.do(http.MethodPost, "/api/auth/register", "", tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorBody](t, rec)
		assert.Equal(t, tc.msg, body.Message)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
	}
}

func TestLoginAndProfile(t *testing.T) {
	ts := newTestServer(t)
	reg := ts.register("Ada", "ada@x.com", "vendor")
	require.NotNil(t, reg.User.VendorID)

	wrong := ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ada@x.com", "password": "incorrect"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, "Invalid credentials", decode[errorBody](t, wrong).Message)

	ok := ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": " ADA@x.com ", "password": "longenough"})
	require.Equal(t, http.StatusOK, ok.Code)
	login := decode[authBody](t, ok)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.Equal(t, *reg.User.VendorID, *login.User.VendorID)

	profile := ts.do(http.MethodGet, "/api/auth/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, profile.Code)
	assert.Equal(t, "vendor", decode[authBodyUser](t, profile).Role)

	missing := ts.do(http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, "Authorization header missing", decode[errorBody](t, missing).Message)
}

func TestLoginIsRateLimitedPerEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.register("Ada", "ada@x.com", "customer")

	var last *httptest.ResponseRecorder
	for i := 0; i < 4; i++ {
		last = ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ada@x.com", "password": "nope-nope"})
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
}

func TestProfileRename(t *testing.T) {
	ts := newTestServer(t)
	reg := ts.register("Ada", "ada@x.com", "customer")

	rec := ts.do(http.MethodPut, "/api/profile/me", reg.Token, map[string]any{"name": "  Ada L. ", "email": "evil@x.com", "role": "vendor"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[authBodyUser](t, rec)
	assert.Equal(t, "Ada L.", body.Name)
	assert.Equal(t, "ada@x.com", body.Email)
	assert.Equal(t, "customer", body.Role)

	get := ts.do(http.MethodGet, "/api/profile/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, "Ada L.", decode[authBodyUser](t, get).Name)

	blank := ts.do(http.MethodPut, "/api/profile/me", reg.Token, map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, blank.Code)
}

type checkoutBody struct {
	Message string       `json:"message"`
	Order   orders.Order `json:"order"`
}

type authBodyUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func TestCheckoutExample(t *testing.T) {
	ts := newTestServer(t)
	ts.seedProducts(
		products.Product{ID: "prd-mug", VendorID: "vndr-clay", Name: "Mug", Price: 10.00},
		products.Product{ID: "prd-scarf", VendorID: "vndr-wool", Name: "Scarf", Price: 5.50},
	)
	customer := ts.register("Ada", "ada@x.com", "customer")

	rec := ts.do(http.MethodPost, "/api/cart/checkout", customer.Token, map[string]any{
		"items": []map[string]any{
			{"productId": "prd-mug", "quantity": 2, "vendorId": "ignored"},
			{"productId": "prd-scarf", "quantity": 1},
		},
		"notes": "Gift wrap",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode[checkoutBody](t, rec)
	assert.Equal(t, "Checkout complete", body.Message)
	assert.Equal(t, 25.50, body.Order.Subtotal)
	assert.Equal(t, 1.28, body.Order.ServiceFee)
	assert.Equal(t, 26.78, body.Order.Total)
	assert.Equal(t, "processing", string(body.Order.Status))
	assert.Equal(t, "Ada", body.Order.CustomerName)

	mine := ts.do(http.MethodGet, "/api/orders/my", customer.Token, nil)
	require.Equal(t, http.StatusOK, mine.Code)
	assert.Len(t, decode[[]orders.Order](t, mine), 1)
}

func TestCheckoutRejections(t *testing.T) {
	ts := newTestServer(t)
	ts.seedProducts(products.Product{ID: "prd-mug", VendorID: "vndr-clay", Name: "Mug", Price: 10})
	customer := ts.register("Ada", "ada@x.com", "customer")

	cases := []struct {
		body map[string]any
		msg  string
	}{
		{map[string]any{"items": []any{}}, "At least one item is required"},
		{map[string]any{}, "At least one item is required"},
		{map[string]any{"items": []map[string]any{{"productId": "prd-ghost", "quantity": 1}}}, "Product prd-ghost was not found"},
		{map[string]any{"items": []map[string]any{{"productId": "prd-mug", "quantity": 11}}}, "Item 1 quantity must be at most 10"},
		{map[string]any{"items": []map[string]any{{"productId": "prd-mug", "quantity": 1}, {"productId": "prd-mug", "quantity": 0}}}, "Item 2 quantity must be at least 1"},
	}
	for _, tc := range cases {
		rec := ts.do(http.MethodPost, "/api/cart/checkout", customer.Token, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, tc.msg, decode[errorBody](t, rec).Message)
	}

	tooMany := make([]map[string]any, 21)
	for i := range tooMany {
		tooMany[i] = map[string]any{"productId": "prd-mug", "quantity": 1}
	}
	rec := ts.do(http.MethodPost, "/api/cart/checkout", customer.Token, map[string]any{"items": tooMany})
	assert.Equal(t, "Cart exceeds maximum length", decode[errorBody](t, rec).Message)

	mine := ts.do(http.MethodGet, "/api/orders/my", customer.Token, nil)
	assert.Empty(t, decode[[]orders.Order](t, mine))

	anon := ts.do(http.MethodPost, "/api/cart/checkout", "", map[string]any{"items": tooMany[:1]})
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
}

func TestVendorProductLifecycle(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.register("Clay Works", "clay@x.com", "vendor")
	other := ts.register("Wool", "wool@x.com", "vendor")
	customer := ts.register("Ada", "ada@x.com", "customer")

	forbidden := ts.do(http.MethodPost, "/api/vendor/products", customer.Token, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusForbidden, forbidden.Code)
	assert.Equal(t, "Access denied for this role", decode[errorBody](t, forbidden).Message)

	invalid := ts.do(http.MethodPost, "/api/vendor/products", owner.Token, map[string]any{
		"name": "Mug", "description": "Stoneware", "price": 0.5,
	})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Equal(t, "Price must be at least 1", decode[errorBody](t, invalid).Message)

	created := ts.do(http.MethodPost, "/api/vendor/products", owner.Token, map[string]any{
		"name": "Mug", "description": "Stoneware", "price": 18, "inventory": 4,
		"tags": []any{"Ceramic", 3}, "images": "not-a-list",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	product := decode[products.Product](t, created)
	assert.Equal(t, *owner.User.VendorID, product.VendorID)
	assert.Equal(t, 4, product.Inventory)
	assert.Equal(t, []string{"Ceramic"}, product.Tags)
	assert.Equal(t, []string{}, product.Images)
	assert.True(t, product.IsActive)

	notOwner := ts.do(http.MethodPut, "/api/vendor/products/"+product.ID, other.Token, map[string]any{"price": 30})
	assert.Equal(t, http.StatusNotFound, notOwner.Code)

	updated := ts.do(http.MethodPut, "/api/vendor/products/"+product.ID, owner.Token, map[string]any{
		"price": 30, "isActive": false, "name": "",
	})
	require.Equal(t, http.StatusOK, updated.Code)
	after := decode[products.Product](t, updated)
	assert.Equal(t, 30.0, after.Price)
	assert.False(t, after.IsActive)
	assert.Equal(t, "Mug", after.Name)

	search := ts.do(http.MethodGet, "/api/products?search=CERAMIC", "", nil)
	require.Equal(t, http.StatusOK, search.Code)
	assert.Len(t, decode[[]products.Product](t, search), 1)

	padded := ts.do(http.MethodGet, "/api/products?search=%20mug", "", nil)
	require.Equal(t, http.StatusOK, padded.Code)
	assert.Empty(t, decode[[]products.Product](t, padded))

	mine := ts.do(http.MethodGet, "/api/vendor/products", owner.Token, nil)
	assert.Len(t, decode[[]products.Product](t, mine), 1)
	theirs := ts.do(http.MethodGet, "/api/vendor/products", other.Token, nil)
	assert.Empty(t, decode[[]products.Product](t, theirs))

	detail := ts.do(http.MethodGet, "/api/products/"+product.ID, "", nil)
	assert.Equal(t, http.StatusOK, detail.Code)
	missing := ts.do(http.MethodGet, "/api/products/prd-none", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Product not found", decode[errorBody](t, missing).Message)
}

func TestVendorsAndCustomizations(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.register("Clay Works", "clay@x.com", "vendor")
	customer := ts.register("Ada", "ada@x.com", "customer")
	vendorID := *owner.User.VendorID

	created := ts.do(http.MethodPost, "/api/vendor/products", owner.Token, map[string]any{
		"name": "Mug", "description": "Stoneware", "price": 18,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	product := decode[products.Product](t, created)

	list := ts.do(http.MethodGet, "/api/vendors", "", nil)
	require.Equal(t, http.StatusOK, list.Code)
	summaries := decode[[]vendors.Summary](t, list)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].ProductCount)

	bySlug := ts.do(http.MethodGet, "/api/vendors/clay-works", "", nil)
	require.Equal(t, http.StatusOK, bySlug.Code)
	detail := decode[vendors.Detail](t, bySlug)
	assert.Equal(t, vendorID, detail.ID)
	assert.Len(t, detail.Products, 1)

	productsOf := ts.do(http.MethodGet, "/api/vendors/"+vendorID+"/products", "", nil)
	assert.Len(t, decode[[]products.Product](t, productsOf), 1)

	me := ts.do(http.MethodGet, "/api/vendors/me", owner.Token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "Clay Works Studio", decode[vendors.Vendor](t, me).Name)

	meAsCustomer := ts.do(http.MethodGet, "/api/vendors/me", customer.Token, nil)
	assert.Equal(t, http.StatusForbidden, meAsCustomer.Code)

	unknown := ts.do(http.MethodGet, "/api/vendors/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, unknown.Code)

	mismatch := ts.do(http.MethodPost, "/api/customizations", customer.Token, map[string]any{
		"productId": product.ID, "vendorId": "vndr-other", "details": "Blue glaze",
	})
	assert.Equal(t, http.StatusBadRequest, mismatch.Code)
	assert.Equal(t, "Product does not belong to vendor", decode[errorBody](t, mismatch).Message)

	lowBudget := ts.do(http.MethodPost, "/api/customizations", customer.Token, map[string]any{
		"productId": product.ID, "vendorId": vendorID, "details": "Blue glaze", "budget": 0.5,
	})
	assert.Equal(t, http.StatusBadRequest, lowBudget.Code)

	ok := ts.do(http.MethodPost, "/api/customizations", customer.Token, map[string]any{
		"productId": product.ID, "vendorId": vendorID, "details": "Blue glaze", "budget": 40,
	})
	require.Equal(t, http.StatusCreated, ok.Code, ok.Body.String())
	submitted := decode[struct {
		Message string                 `json:"message"`
		Request customizations.Request `json:"request"`
	}](t, ok)
	assert.Equal(t, "Customization request submitted", submitted.Message)
	assert.Equal(t, "new", string(submitted.Request.Status))

	mine := ts.do(http.MethodGet, "/api/customizations/my", customer.Token, nil)
	assert.Len(t, decode[[]customizations.Request](t, mine), 1)
	inbox := ts.do(http.MethodGet, "/api/vendor/customizations", owner.Token, nil)
	assert.Len(t, decode[[]customizations.Request](t, inbox), 1)
	vendorMine := ts.do(http.MethodGet, "/api/customizations/my", owner.Token, nil)
	assert.Equal(t, http.StatusForbidden, vendorMine.Code)
}

func TestHealthBlogAndFallbacks(t *testing.T) {
	ts := newTestServer(t)

	health := ts.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, health.Code)
	hb := decode[map[string]any](t, health)
	assert.Equal(t, "ok", hb["status"])
	assert.Greater(t, hb["timestamp"].(float64), float64(0))
	assert.Equal(t, "nosniff", health.Header().Get("X-Content-Type-Options"))

	posts := ts.do(http.MethodGet, "/api/blog", "", nil)
	require.Equal(t, http.StatusOK, posts.Code)
	assert.JSONEq(t, `[]`, posts.Body.String())

	post := ts.do(http.MethodGet, "/api/blog/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, post.Code)
	assert.Equal(t, "Post not found", decode[errorBody](t, post).Message)

	route := ts.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, route.Code)
	assert.Equal(t, "Route not found", decode[errorBody](t, route).Message)

	method := ts.do(http.MethodDelete, "/api/products", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, method.Code)

	bad := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"email":`))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", decode[errorBody](t, rec).Message)

	scrape := ts.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), "http_requests_total")
}

type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (c *countingLimiter) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}
