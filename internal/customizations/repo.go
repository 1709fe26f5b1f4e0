package customizations

import (
	"context"
	"sort"

	"github.com/craftcollective/craft-market/pkg/store"
)

// Repository persists requests in the customization-requests collection.
type Repository interface {
	Create(ctx context.Context, request Request) (*Request, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Request, error)
	ListByVendor(ctx context.Context, vendorID string) ([]Request, error)
}

type repository struct {
	records *store.Collection[Request]
}

// NewRepository builds a customization request repository bound to the provided store.
func NewRepository(s *store.Store) Repository {
	return &repository{records: store.NewCollection[Request](s, store.CustomizationRequests)}
}

func (r *repository) Create(ctx context.Context, request Request) (*Request, error) {
	if _, err := r.records.Update(ctx, func(all []Request) ([]Request, error) {
		return append(all, request), nil
	}); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID string) ([]Request, error) {
	return r.newestFirst(ctx, func(req Request) bool { return req.CustomerID == customerID })
}

func (r *repository) ListByVendor(ctx context.Context, vendorID string) ([]Request, error) {
	return r.newestFirst(ctx, func(req Request) bool { return req.VendorID == vendorID })
}

func (r *repository) newestFirst(ctx context.Context, pred func(Request) bool) ([]Request, error) {
	items, err := r.records.Filter(ctx, pred)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
