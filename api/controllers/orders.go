package controllers

import (
	"fmt"
	"net/http"

	"github.com/craftcollective/craft-market/api/responses"
	"github.com/craftcollective/craft-market/api/validators"
	"github.com/craftcollective/craft-market/internal/orders"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/logger"
)

type checkoutItemRequest struct {
	ProductID      string `json:"productId" validate:"required"`
	Quantity       any    `json:"quantity"`
	Customizations any    `json:"customizations"`
}

type checkoutRequest struct {
	Items         []checkoutItemRequest `json:"items" validate:"dive"`
	PaymentMethod any                   `json:"paymentMethod"`
	Notes         any                   `json:"notes"`
}

func (p checkoutRequest) toInput() (orders.CheckoutInput, error) {
	if len(p.Items) == 0 {
		return orders.CheckoutInput{}, pkgerrors.BadRequest("At least one item is required")
	}
	if len(p.Items) > orders.MaxItems {
		return orders.CheckoutInput{}, pkgerrors.BadRequest("Cart exceeds maximum length")
	}
	items := make([]orders.CheckoutItem, 0, len(p.Items))
	for i, item := range p.Items {
		quantity, err := validators.Integer(item.Quantity, fmt.Sprintf("Item %d quantity", i+1), validators.Range(1, orders.MaxQuantity))
		if err != nil {
			return orders.CheckoutInput{}, err
		}
		items = append(items, orders.CheckoutItem{
			ProductID:      item.ProductID,
			Quantity:       quantity,
			Customizations: validators.Object(item.Customizations),
		})
	}
	notes, _ := p.Notes.(string)
	return orders.CheckoutInput{
		Items:         items,
		PaymentMethod: validators.StringOr(p.PaymentMethod, orders.DefaultPaymentMethod),
		Notes:         notes,
	}, nil
}

type checkoutResponse struct {
	Message string        `json:"message"`
	Order   *orders.Order `json:"order"`
}

// CartCheckout turns the posted cart into an order priced from current product data.
func CartCheckout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := requireIdentity(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), orders.Customer{ID: identity.ID, Name: identity.Name}, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"order_id": order.ID,
				"items":    len(order.Items),
				"total":    order.Total,
			})
			logg.Info(ctx, "order.placed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{Message: "Checkout complete", Order: order})
	}
}

func OrdersMine(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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
