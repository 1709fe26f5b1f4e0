package controllers

import (
	"net/http"

	"github.com/craftcollective/craft-market/api/middleware"
	"github.com/craftcollective/craft-market/pkg/auth"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
)

func requireIdentity(r *http.Request) (auth.Identity, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok || identity.ID == "" {
		return auth.Identity{}, pkgerrors.Unauthorized("Authorization header missing")
	}
	return identity, nil
}
