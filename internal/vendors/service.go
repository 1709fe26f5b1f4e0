package vendors

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/craftcollective/craft-market/internal/products"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
)

// Service exposes storefront reads.
type Service interface {
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, idOrSlug string) (*Detail, error)
	Products(ctx context.Context, idOrSlug string) ([]products.Product, error)
	Mine(ctx context.Context, vendorID string) (*Vendor, error)
}

type service struct {
	vendors  Repository
	products products.Repository
}

// NewService builds a vendor service over the vendor and product repositories.
func NewService(vendors Repository, productsRepo products.Repository) (Service, error) {
	if vendors == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{vendors: vendors, products: productsRepo}, nil
}

// List annotates every vendor with its product count. Both collections load concurrently.
func (s *service) List(ctx context.Context) ([]Summary, error) {
	var (
		vendors []Vendor
		items   []products.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vendors, err = s.vendors.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.products.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, pkgerrors.Internal(err, "load vendors")
	}

	counts := make(map[string]int, len(vendors))
	for _, p := range items {
		counts[p.VendorID]++
	}
	out := make([]Summary, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, Summary{Vendor: v, ProductCount: counts[v.ID]})
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, idOrSlug string) (*Detail, error) {
	vendor, err := s.resolve(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	items, err := s.products.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load vendor products")
	}
	return &Detail{Vendor: *vendor, Products: items}, nil
}

func (s *service) Products(ctx context.Context, idOrSlug string) ([]products.Product, error) {
	detail, err := s.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return detail.Products, nil
}

func (s *service) Mine(ctx context.Context, vendorID string) (*Vendor, error) {
	if strings.TrimSpace(vendorID) == "" {
		return nil, pkgerrors.NotFound("Vendor profile not found")
	}
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load vendor")
	}
	if vendor == nil {
		return nil, pkgerrors.NotFound("Vendor profile not found")
	}
	return vendor, nil
}

func (s *service) resolve(ctx context.Context, idOrSlug string) (*Vendor, error) {
	vendor, err := s.vendors.FindByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load vendor")
	}
	if vendor == nil {
		return nil, pkgerrors.NotFound("Vendor not found")
	}
	return vendor, nil
}
