package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/craftcollective/craft-market/internal/products"
	"github.com/craftcollective/craft-market/pkg/enums"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/money"
)

// Service places orders and lists a customer's order history.
type Service interface {
	Checkout(ctx context.Context, customer Customer, input CheckoutInput) (*Order, error)
	ListForCustomer(ctx context.Context, customerID string) ([]Order, error)
}

type productCatalogue interface {
	List(ctx context.Context) ([]products.Product, error)
}

type service struct {
	repo     Repository
	products productCatalogue
	now      func() time.Time
}

// NewService builds an order service.
func NewService(repo Repository, productsRepo productCatalogue) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, products: productsRepo, now: time.Now}, nil
}

// Checkout prices the cart against current product data and persists one order.
// The orders collection is written only after every item resolves.
func (s *service) Checkout(ctx context.Context, customer Customer, input CheckoutInput) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.BadRequest("At least one item is required")
	}
	if len(input.Items) > MaxItems {
		return nil, pkgerrors.BadRequest("Cart exceeds maximum length")
	}

	catalogue, err := s.products.List(ctx)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load products")
	}
	byID := make(map[string]products.Product, len(catalogue))
	for _, p := range catalogue {
		if _, seen := byID[p.ID]; !seen {
			byID[p.ID] = p
		}
	}

	items := make([]Item, 0, len(input.Items))
	lineTotals := make([]float64, 0, len(input.Items))
	for _, line := range input.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, pkgerrors.BadRequest(fmt.Sprintf("Product %s was not found", line.ProductID))
		}
		customizations := line.Customizations
		if customizations == nil {
			customizations = map[string]any{}
		}
		lineTotal := money.LineTotal(product.Price, line.Quantity)
		lineTotals = append(lineTotals, lineTotal)
		items = append(items, Item{
			ProductID:      product.ID,
			Name:           product.Name,
			VendorID:       product.VendorID,
			Price:          product.Price,
			Quantity:       line.Quantity,
			Customizations: customizations,
			LineTotal:      lineTotal,
		})
	}

	totals := money.ComputeTotals(lineTotals)
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	created, err := s.repo.Create(ctx, Order{
		ID:            uuid.NewString(),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CreatedAt:     s.now().UTC().Truncate(time.Millisecond),
		PaymentMethod: paymentMethod,
		Subtotal:      totals.Subtotal,
		ServiceFee:    totals.ServiceFee,
		Total:         totals.Total,
		Notes:         clampRunes(input.Notes, MaxNotesLen),
		Items:         items,
		Status:        enums.OrderStatusProcessing,
	})
	if err != nil {
		return nil, pkgerrors.Internal(err, "create order")
	}
	return created, nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID string) ([]Order, error) {
	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load orders")
	}
	return items, nil
}

func clampRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
