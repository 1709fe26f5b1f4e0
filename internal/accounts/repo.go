package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/craftcollective/craft-market/pkg/store"
)

// ErrEmailTaken is returned by Insert when another account owns the email.
var ErrEmailTaken = errors.New("email already registered")

var errNoMatch = errors.New("no matching account")

// Repository persists accounts in the accounts collection.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// Insert appends account unless its email is taken. prepare runs under the
	// collection lock before the write and may fill in linked records.
	Insert(ctx context.Context, account Account, prepare func(*Account) error) (*Account, error)
	UpdateName(ctx context.Context, id, name string, at time.Time) (*Account, error)
}

type repository struct {
	records *store.Collection[Account]
}

// NewRepository builds an accounts repository bound to the provided store.
func NewRepository(s *store.Store) Repository {
	return &repository{records: store.NewCollection[Account](s, store.Accounts)}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Account, error) {
	return r.find(ctx, func(a Account) bool { return a.ID == id })
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.find(ctx, func(a Account) bool { return a.Email == email })
}

func (r *repository) Insert(ctx context.Context, account Account, prepare func(*Account) error) (*Account, error) {
	_, err := r.records.Update(ctx, func(all []Account) ([]Account, error) {
		for _, existing := range all {
			if existing.Email == account.Email {
				return nil, ErrEmailTaken
			}
		}
		if prepare != nil {
			if err := prepare(&account); err != nil {
				return nil, err
			}
		}
		return append(all, account), nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateName returns nil, nil when the account does not exist.
func (r *repository) UpdateName(ctx context.Context, id, name string, at time.Time) (*Account, error) {
	var updated Account
	_, err := r.records.Update(ctx, func(all []Account) ([]Account, error) {
		for i := range all {
			if all[i].ID == id {
				all[i].Name = name
				all[i].UpdatedAt = at
				updated = all[i]
				return all, nil
			}
		}
		return nil, errNoMatch
	})
	if errors.Is(err, errNoMatch) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) find(ctx context.Context, pred func(Account) bool) (*Account, error) {
	account, ok, err := r.records.Find(ctx, pred)
	if err != nil || !ok {
		return nil, err
	}
	return &account, nil
}
