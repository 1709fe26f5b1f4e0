package vendors

import (
	"context"

	"github.com/craftcollective/craft-market/pkg/store"
)

// Repository persists vendors in the vendors collection.
type Repository interface {
	List(ctx context.Context) ([]Vendor, error)
	FindByID(ctx context.Context, id string) (*Vendor, error)
	FindByIDOrSlug(ctx context.Context, identifier string) (*Vendor, error)
	// FindOrCreate returns the vendor with id, or stores and returns fallback.
	FindOrCreate(ctx context.Context, id string, fallback Vendor) (*Vendor, bool, error)
}

type repository struct {
	records *store.Collection[Vendor]
}

// NewRepository builds a vendors repository bound to the provided store.
func NewRepository(s *store.Store) Repository {
	return &repository{records: store.NewCollection[Vendor](s, store.Vendors)}
}

func (r *repository) List(ctx context.Context) ([]Vendor, error) {
	return r.records.Load(ctx)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Vendor, error) {
	return r.find(ctx, func(v Vendor) bool { return v.ID == id })
}

// FindByIDOrSlug returns the first vendor in file order whose id or slug equals identifier.
func (r *repository) FindByIDOrSlug(ctx context.Context, identifier string) (*Vendor, error) {
	return r.find(ctx, func(v Vendor) bool { return v.ID == identifier || v.StoreSlug == identifier })
}

func (r *repository) FindOrCreate(ctx context.Context, id string, fallback Vendor) (*Vendor, bool, error) {
	var (
		result  Vendor
		created bool
	)
	_, err := r.records.Update(ctx, func(all []Vendor) ([]Vendor, error) {
		if id != "" {
			for _, v := range all {
				if v.ID == id {
					result = v
					return all, nil
				}
			}
		}
		result = fallback
		created = true
		return append(all, fallback), nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, created, nil
}

func (r *repository) find(ctx context.Context, pred func(Vendor) bool) (*Vendor, error) {
	vendor, ok, err := r.records.Find(ctx, pred)
	if err != nil || !ok {
		return nil, err
	}
	return &vendor, nil
}
