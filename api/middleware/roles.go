package middleware

import (
	"net/http"

	"github.com/craftcollective/craft-market/api/responses"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/enums"
	"github.com/craftcollective/craft-market/pkg/logger"
)

// RequireRole admits callers whose role is in roles. It must run after Auth.
func RequireRole(logg *logger.Logger, roles ...enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Unauthorized("Authorization header missing"))
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Forbidden("Access denied for this role"))
		})
	}
}
