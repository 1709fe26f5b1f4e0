package products

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/google/uuid"
)

// Service exposes catalogue reads and vendor-owned product writes.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	ListForVendor(ctx context.Context, vendorID string) ([]Product, error)
	Create(ctx context.Context, vendorID string, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, vendorID, productID string, input UpdateProductInput) (*Product, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a product service backed by repo.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	var (
		items []Product
		err   error
	)
	if filter.VendorID != "" {
		items, err = s.repo.ListByVendor(ctx, filter.VendorID)
	} else {
		items, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "load products")
	}

	term := strings.ToLower(filter.Search)
	if term == "" {
		return items, nil
	}
	out := make([]Product, 0, len(items))
	for _, p := range items {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load product")
	}
	if product == nil {
		return nil, pkgerrors.NotFound("Product not found")
	}
	return product, nil
}

func (s *service) ListForVendor(ctx context.Context, vendorID string) ([]Product, error) {
	if err := requireVendor(vendorID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load vendor products")
	}
	return items, nil
}

func (s *service) Create(ctx context.Context, vendorID string, input CreateProductInput) (*Product, error) {
	if err := requireVendor(vendorID); err != nil {
		return nil, err
	}
	now := s.now().UTC().Truncate(time.Millisecond)
	product := Product{
		ID:             "prd-" + uuid.NewString(),
		VendorID:       vendorID,
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Inventory:      input.Inventory,
		Images:         nonNil(input.Images),
		Tags:           nonNil(input.Tags),
		Customizations: nonNil(input.Customizations),
		IsActive:       input.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Internal(err, "create product")
	}
	return created, nil
}

// Update merges input into a product owned by vendorID. Products owned by other
// vendors are reported as not found.
func (s *service) Update(ctx context.Context, vendorID, productID string, input UpdateProductInput) (*Product, error) {
	if err := requireVendor(vendorID); err != nil {
		return nil, err
	}
	now := s.now().UTC().Truncate(time.Millisecond)
	updated, err := s.repo.Update(ctx, productID, vendorID, func(p *Product) error {
		applyUpdate(p, input)
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Internal(err, "update product")
	}
	if updated == nil {
		return nil, pkgerrors.NotFound("Product not found")
	}
	return updated, nil
}

func applyUpdate(p *Product, input UpdateProductInput) {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Inventory != nil {
		p.Inventory = *input.Inventory
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
}

func requireVendor(vendorID string) error {
	if strings.TrimSpace(vendorID) == "" {
		return pkgerrors.BadRequest("No vendor store linked to this account")
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
