package controllers

import (
	"net/http"

	"github.com/craftcollective/craft-market/api/responses"
	"github.com/craftcollective/craft-market/api/validators"
	"github.com/craftcollective/craft-market/internal/customizations"
	"github.com/craftcollective/craft-market/pkg/logger"
)

type createCustomizationRequest struct {
	ProductID any `json:"productId"`
	VendorID  any `json:"vendorId"`
	Details   any `json:"details"`
	Budget    any `json:"budget"`
}

func (p createCustomizationRequest) toInput() (customizations.CreateInput, error) {
	productID, err := validators.NonEmptyString(p.ProductID, "Product")
	if err != nil {
		return customizations.CreateInput{}, err
	}
	vendorID, err := validators.NonEmptyString(p.VendorID, "Vendor")
	if err != nil {
		return customizations.CreateInput{}, err
	}
	details, err := validators.NonEmptyString(p.Details, "Details")
	if err != nil {
		return customizations.CreateInput{}, err
	}
	input := customizations.CreateInput{ProductID: productID, VendorID: vendorID, Details: details}
	if validators.Truthy(p.Budget) {
		budget, err := validators.Number(p.Budget, "Budget", validators.Min(1))
		if err != nil {
			return customizations.CreateInput{}, err
		}
		input.Budget = &budget
	}
	return input, nil
}

type customizationCreated struct {
	Message string                  `json:"message"`
	Request *customizations.Request `json:"request"`
}

func CustomizationCreate(svc customizations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := requireIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload createCustomizationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Create(r.Context(), identity.ID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customizationCreated{
			Message: "Customization request submitted",
			Request: request,
		})
	}
}

func CustomizationsMine(svc customizations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := requireIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListForCustomer(r.Context(), identity.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
