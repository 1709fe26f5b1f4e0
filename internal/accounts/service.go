package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/craftcollective/craft-market/internal/vendors"
	pkgAuth "github.com/craftcollective/craft-market/pkg/auth"
	"github.com/craftcollective/craft-market/pkg/config"
	"github.com/craftcollective/craft-market/pkg/enums"
	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/security"
)

const invalidCredentialsMessage = "Invalid credentials"

// Service covers registration, login and profile maintenance.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Profile(ctx context.Context, id string) (*Summary, error)
	UpdateName(ctx context.Context, id, name string) (*Summary, error)
}

type vendorRepository interface {
	FindOrCreate(ctx context.Context, id string, fallback vendors.Vendor) (*vendors.Vendor, bool, error)
}

// ServiceParams bundles the dependencies required to build an accounts service.
type ServiceParams struct {
	Accounts       Repository
	Vendors        vendorRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

type service struct {
	accounts    Repository
	vendors     vendorRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService constructs an accounts service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts repository is required")
	}
	if params.Vendors == nil {
		return nil, fmt.Errorf("vendors repository is required")
	}
	return &service{
		accounts:    params.Accounts,
		vendors:     params.Vendors,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		now:         time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.accounts.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, pkgerrors.Internal(err, "lookup account")
	}
	if existing != nil {
		return nil, pkgerrors.BadRequest("Email is already registered")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Internal(err, "hash password")
	}

	role := input.Role
	if !role.IsValid() {
		role = enums.RoleCustomer
	}
	now := s.now().UTC().Truncate(time.Millisecond)
	account := Account{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The vendor is resolved under the accounts lock so a duplicate email never
	// leaves a placeholder storefront behind.
	created, err := s.accounts.Insert(ctx, account, func(a *Account) error {
		if a.Role != enums.RoleVendor {
			return nil
		}
		vendor, _, err := s.vendors.FindOrCreate(ctx, strings.TrimSpace(input.VendorID), vendors.NewPlaceholder(a.Name))
		if err != nil {
			return err
		}
		a.VendorID = &vendor.ID
		return nil
	})
	if errors.Is(err, ErrEmailTaken) {
		return nil, pkgerrors.BadRequest("Email is already registered")
	}
	if err != nil {
		return nil, pkgerrors.Internal(err, "create account")
	}

	return s.issue(*created)
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	account, err := s.accounts.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, pkgerrors.Internal(err, "lookup account")
	}
	if account == nil {
		return nil, pkgerrors.Unauthorized(invalidCredentialsMessage)
	}

	ok, err := security.VerifyPassword(input.Password, account.PasswordHash)
	if err != nil && !errors.Is(err, security.ErrInvalidHash) {
		return nil, pkgerrors.Internal(err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.Unauthorized(invalidCredentialsMessage)
	}

	return s.issue(*account)
}

func (s *service) Profile(ctx context.Context, id string) (*Summary, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Internal(err, "load account")
	}
	if account == nil {
		return nil, pkgerrors.NotFound("User profile not found")
	}
	summary := account.Summary()
	return &summary, nil
}

// UpdateName renames the account. No other field may change.
func (s *service) UpdateName(ctx context.Context, id, name string) (*Summary, error) {
	updated, err := s.accounts.UpdateName(ctx, id, name, s.now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return nil, pkgerrors.Internal(err, "update account")
	}
	if updated == nil {
		return nil, pkgerrors.NotFound("User profile not found")
	}
	summary := updated.Summary()
	return &summary, nil
}

func (s *service) issue(account Account) (*AuthResult, error) {
	summary := account.Summary()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), pkgAuth.AccessTokenPayload{
		UserID:   account.ID,
		Email:    account.Email,
		Name:     account.Name,
		Role:     account.Role,
		VendorID: summary.VendorID,
	})
	if err != nil {
		return nil, pkgerrors.Internal(err, "mint access token")
	}
	return &AuthResult{Token: token, User: summary}, nil
}
