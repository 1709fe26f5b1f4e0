package orders

import (
	"context"
	"sort"

	"github.com/craftcollective/craft-market/pkg/store"
)

// Repository persists orders in the orders collection.
type Repository interface {
	Create(ctx context.Context, order Order) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
}

type repository struct {
	records *store.Collection[Order]
}

// NewRepository builds an orders repository bound to the provided store.
func NewRepository(s *store.Store) Repository {
	return &repository{records: store.NewCollection[Order](s, store.Orders)}
}

func (r *repository) Create(ctx context.Context, order Order) (*Order, error) {
	if _, err := r.records.Update(ctx, func(all []Order) ([]Order, error) {
		return append(all, order), nil
	}); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer returns the customer's orders newest first.
func (r *repository) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	items, err := r.records.Filter(ctx, func(o Order) bool { return o.CustomerID == customerID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}
