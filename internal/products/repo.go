package products

import (
	"context"
	"errors"
	"strings"

	"github.com/craftcollective/craft-market/pkg/store"
)

var errNoMatch = errors.New("no matching product")

// Repository persists products in the products collection.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, product Product) (*Product, error)
	Update(ctx context.Context, id, vendorID string, mutate func(*Product) error) (*Product, error)
}

type repository struct {
	records *store.Collection[Product]
}

// NewRepository builds a products repository bound to the provided store.
func NewRepository(s *store.Store) Repository {
	return &repository{records: store.NewCollection[Product](s, store.Products)}
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	return r.records.Load(ctx)
}

func (r *repository) ListByVendor(ctx context.Context, vendorID string) ([]Product, error) {
	return r.records.Filter(ctx, func(p Product) bool { return p.VendorID == vendorID })
}

// FindByID returns nil when no product has the id.
func (r *repository) FindByID(ctx context.Context, id string) (*Product, error) {
	product, ok, err := r.records.Find(ctx, func(p Product) bool { return p.ID == id })
	if err != nil || !ok {
		return nil, err
	}
	return &product, nil
}

func (r *repository) Create(ctx context.Context, product Product) (*Product, error) {
	if _, err := r.records.Update(ctx, func(all []Product) ([]Product, error) {
		return append(all, product), nil
	}); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies mutate to the product owned by vendorID. It returns nil, nil when no
// such product exists; nothing is written when mutate fails.
func (r *repository) Update(ctx context.Context, id, vendorID string, mutate func(*Product) error) (*Product, error) {
	var updated *Product
	_, err := r.records.Update(ctx, func(all []Product) ([]Product, error) {
		for i := range all {
			if all[i].ID != id || all[i].VendorID != vendorID {
				continue
			}
			next := all[i]
			if err := mutate(&next); err != nil {
				return nil, err
			}
			all[i] = next
			updated = &next
			return all, nil
		}
		return nil, errNoMatch
	})
	if errors.Is(err, errNoMatch) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
