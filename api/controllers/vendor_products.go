package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/craftcollective/craft-market/api/responses"
	"github.com/craftcollective/craft-market/api/validators"
	"github.com/craftcollective/craft-market/internal/customizations"
	"github.com/craftcollective/craft-market/internal/products"
	"github.com/craftcollective/craft-market/pkg/logger"
)

type createProductRequest struct {
	Name           any `json:"name"`
	Description    any `json:"description"`
	Price          any `json:"price"`
	Inventory      any `json:"inventory"`
	Images         any `json:"images"`
	Tags           any `json:"tags"`
	Customizations any `json:"customizations"`
	IsActive       any `json:"isActive"`
}

func (p createProductRequest) toInput() (products.CreateProductInput, error) {
	name, err := validators.NonEmptyString(p.Name, "Name")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	description, err := validators.NonEmptyString(p.Description, "Description")
	if err != nil {
		return products.CreateProductInput{}, err
	}
	price, err := validators.Number(p.Price, "Price", validators.Min(1))
	if err != nil {
		return products.CreateProductInput{}, err
	}
	inventory := 0
	if validators.IsInteger(p.Inventory) {
		if inventory, err = validators.Integer(p.Inventory, "Inventory", validators.Min(0)); err != nil {
			return products.CreateProductInput{}, err
		}
	}
	return products.CreateProductInput{
		Name:           name,
		Description:    description,
		Price:          price,
		Inventory:      inventory,
		Images:         validators.Strings(p.Images),
		Tags:           validators.Strings(p.Tags),
		Customizations: validators.Array(p.Customizations),
		IsActive:       validators.BoolOr(p.IsActive, true),
	}, nil
}

type updateProductRequest struct {
	Name        any `json:"name"`
	Description any `json:"description"`
	Price       any `json:"price"`
	Inventory   any `json:"inventory"`
	IsActive    any `json:"isActive"`
}

// toInput validates only the fields present. Empty name and description are ignored.
func (p updateProductRequest) toInput() (products.UpdateProductInput, error) {
	var input products.UpdateProductInput
	if validators.Truthy(p.Name) {
		name, err := validators.NonEmptyString(p.Name, "Name")
		if err != nil {
			return input, err
		}
		input.Name = &name
	}
	if validators.Truthy(p.Description) {
		description, err := validators.NonEmptyString(p.Description, "Description")
		if err != nil {
			return input, err
		}
		input.Description = &description
	}
	if p.Price != nil {
		price, err := validators.Number(p.Price, "Price", validators.Min(1))
		if err != nil {
			return input, err
		}
		input.Price = &price
	}
	if p.Inventory != nil {
		inventory, err := validators.Integer(p.Inventory, "Inventory", validators.Min(0))
		if err != nil {
			return input, err
		}
		input.Inventory = &inventory
	}
	if p.IsActive != nil {
		active := validators.Truthy(p.IsActive)
		input.IsActive = &active
	}
	return input, nil
}

func VendorProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := requireIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListForVendor(r.Context(), identity.VendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func VendorCreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := requireIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), identity.VendorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "product_id", product.ID), "product.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// VendorUpdateProduct answers 404 for products owned by another vendor.
func VendorUpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := requireIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), identity.VendorID, chi.URLParam(r, "productId"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func VendorCustomizations(svc customizations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := requireIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ListForVendor(r.Context(), identity.VendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
