package customizations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/craftcollective/craft-market/internal/products"
	"github.com/craftcollective/craft-market/pkg/enums"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
)

// Service files customization requests and lists them for either side of the exchange.
type Service interface {
	Create(ctx context.Context, customerID string, input CreateInput) (*Request, error)
	ListForCustomer(ctx context.Context, customerID string) ([]Request, error)
	ListForVendor(ctx context.Context, vendorID string) ([]Request, error)
}

type productLookup interface {
	FindByID(ctx context.Context, id string) (*products.Product, error)
}

type service struct {
	repo     Repository
	products productLookup
	now      func() time.Time
}

// NewService builds a customization service.
func NewService(repo Repository, productsRepo productLookup) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customizations repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, products: productsRepo, now: time.Now}, nil
}

// Create checks once that the product exists and belongs to the stated vendor.
func (s *service) Create(ctx context.Context, customerID string, input CreateInput) (*Request, error) {
	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.BadRequest("Product does not exist")
	}
	if product.VendorID != input.VendorID {
		return nil, pkgerrors.BadRequest("Product does not belong to vendor")
	}

	created, err := s.repo.Create(ctx, Request{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		ProductID:  input.ProductID,
		VendorID:   input.VendorID,
		Details:    input.Details,
		Budget:     input.Budget,
		CreatedAt:  s.now().UTC().Truncate(time.Millisecond),
		Status:     enums.CustomizationStatusNew,
	})
	if err != nil {
		return nil, pkgerrors.Internal(err, "create customization request")
	}
	return created, nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID string) ([]Request, error) {
	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load customization requests")
	}
	return items, nil
}

func (s *service) ListForVendor(ctx context.Context, vendorID string) ([]Request, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, pkgerrors.BadRequest("No vendor store linked to this account")
	}
	items, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load customization requests")
	}
	return items, nil
}
