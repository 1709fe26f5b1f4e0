package controllers

import (
	"net/http"
	"unicode/utf8"

	"github.com/craftcollective/craft-market/api/responses"
	"github.com/craftcollective/craft-market/api/validators"
	"github.com/craftcollective/craft-market/internal/accounts"
	"github.com/craftcollective/craft-market/pkg/enums"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/logger"
)

const minPasswordLength = 8

type registerRequest struct {
	Name     any `json:"name"`
	Email    any `json:"email"`
	Password any `json:"password"`
	Role     any `json:"role"`
	VendorID any `json:"vendorId"`
	StoreID  any `json:"storeId"`
}

func (p registerRequest) toInput() (accounts.RegisterInput, error) {
	name, err := validators.NonEmptyString(p.Name, "Name")
	if err != nil {
		return accounts.RegisterInput{}, err
	}
	email, err := validators.Email(p.Email)
	if err != nil {
		return accounts.RegisterInput{}, err
	}
	password, err := validators.NonEmptyString(p.Password, "Password")
	if err != nil {
		return accounts.RegisterInput{}, err
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return accounts.RegisterInput{}, pkgerrors.BadRequest("Password must be at least 8 characters long")
	}
	role, _ := p.Role.(string)
	vendorID := validators.StringOr(p.VendorID, validators.StringOr(p.StoreID, ""))
	return accounts.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     enums.RoleOrDefault(role),
		VendorID: vendorID,
	}, nil
}

type loginRequest struct {
	Email    any `json:"email"`
	Password any `json:"password"`
}

// AuthRegister creates a customer or vendor account and returns a token.
func AuthRegister(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{"user_id": result.User.ID, "role": string(result.User.Role)})
			logg.Info(ctx, "account.registered")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func AuthLogin(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		email, err := validators.Email(payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		password, err := validators.NonEmptyString(payload.Password, "Password")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), accounts.LoginInput{Email: email, Password: password})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthProfile returns the caller's account. A vanished account is treated as unauthenticated.
func AuthProfile(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := requireIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.Profile(r.Context(), identity.ID)
		if pkgerrors.CodeOf(err) == pkgerrors.CodeNotFound {
			err = pkgerrors.Unauthorized("User not found")
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
