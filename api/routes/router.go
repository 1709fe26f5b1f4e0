package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/craftcollective/craft-market/api/controllers"
	"github.com/craftcollective/craft-market/api/middleware"
	"github.com/craftcollective/craft-market/api/responses"
	"github.com/craftcollective/craft-market/internal/accounts"
	"github.com/craftcollective/craft-market/internal/blog"
	"github.com/craftcollective/craft-market/internal/customizations"
	"github.com/craftcollective/craft-market/internal/orders"
	"github.com/craftcollective/craft-market/internal/products"
	"github.com/craftcollective/craft-market/internal/vendors"
	"github.com/craftcollective/craft-market/pkg/config"
	"github.com/craftcollective/craft-market/pkg/enums"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/logger"
	"github.com/craftcollective/craft-market/pkg/metrics"
)

// RateLimitStore counts auth attempts. A nil store disables auth throttling.
type RateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Services bundles everything the router dispatches to.
type Services struct {
	Accounts       accounts.Service
	Vendors        vendors.Service
	Products       products.Service
	Customizations customizations.Service
	Orders         orders.Service
	Blog           blog.Service
	RateLimiter    RateLimitStore
	Metrics        *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Debug(cfg.App.IsDev()),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.Metrics(svc.Metrics),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeMethod, "Method not allowed"))
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	authenticated := middleware.Auth(cfg.JWT, logg)
	customerOnly := middleware.RequireRole(logg, enums.RoleCustomer)
	vendorOnly := middleware.RequireRole(logg, enums.RoleVendor)

	r.Get("/health", controllers.Health())
	if svc.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", svc.Metrics.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, svc.RateLimiter, logg)).Post("/register", controllers.AuthRegister(svc.Accounts, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, svc.RateLimiter, logg)).Post("/login", controllers.AuthLogin(svc.Accounts, logg))
		r.With(authenticated).Get("/profile", controllers.AuthProfile(svc.Accounts, logg))
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(authenticated)
		r.Get("/me", controllers.ProfileGet(svc.Accounts, logg))
		r.Put("/me", controllers.ProfileUpdate(svc.Accounts, logg))
	})

	r.Route("/api/vendors", func(r chi.Router) {
		r.Get("/", controllers.VendorsList(svc.Vendors, logg))
		r.With(authenticated, vendorOnly).Get("/me", controllers.VendorMe(svc.Vendors, logg))
		r.Get("/{vendorId}", controllers.VendorDetail(svc.Vendors, logg))
		r.Get("/{vendorId}/products", controllers.VendorProducts(svc.Vendors, logg))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductsList(svc.Products, logg))
		r.Get("/{productId}", controllers.ProductGet(svc.Products, logg))
	})

	r.Route("/api/blog", func(r chi.Router) {
		r.Get("/", controllers.BlogList(svc.Blog, logg))
		r.Get("/{postId}", controllers.BlogGet(svc.Blog, logg))
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.With(authenticated).Post("/checkout", controllers.CartCheckout(svc.Orders, logg))
	})

	r.Route("/api/customizations", func(r chi.Router) {
		r.Use(authenticated)
		r.Post("/", controllers.CustomizationCreate(svc.Customizations, logg))
		r.With(customerOnly).Get("/my", controllers.CustomizationsMine(svc.Customizations, logg))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.With(authenticated, customerOnly).Get("/my", controllers.OrdersMine(svc.Orders, logg))
	})

	r.Route("/api/vendor", func(r chi.Router) {
		r.Use(authenticated, vendorOnly)
		r.Get("/products", controllers.VendorProductsList(svc.Products, logg))
		r.Post("/products", controllers.VendorCreateProduct(svc.Products, logg))
		r.Put("/products/{productId}", controllers.VendorUpdateProduct(svc.Products, logg))
		r.Get("/customizations", controllers.VendorCustomizations(svc.Customizations, logg))
	})

	return r
}
