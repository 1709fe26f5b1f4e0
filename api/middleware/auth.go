package middleware

import (
	"net/http"
	"strings"

	"github.com/craftcollective/craft-market/api/responses"
	pkgAuth "github.com/craftcollective/craft-market/pkg/auth"
	"github.com/craftcollective/craft-market/pkg/config"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the caller identity.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Unauthorized("Authorization header missing"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Unauthorized("Authorization header missing"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil || claims.UserID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Invalid or expired token"))
				return
			}

			identity := claims.Identity()
			ctx := WithIdentity(r.Context(), identity)
			if logg != nil {
				ctx = logg.WithIdentity(ctx, identity.ID, string(identity.Role), identity.VendorID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
