package accounts

import (
	"time"

	"github.com/craftcollective/craft-market/pkg/enums"
)

// Account is a stored user. PasswordHash never leaves the package through Summary.
type Account struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         enums.Role `json:"role"`
	VendorID     *string    `json:"vendorId"`
	PasswordHash string     `json:"passwordHash"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Summary is the public view of an account.
type Summary struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     enums.Role `json:"role"`
	VendorID *string    `json:"vendorId"`
}

func (a Account) Summary() Summary {
	var vendorID *string
	if a.VendorID != nil && *a.VendorID != "" {
		id := *a.VendorID
		vendorID = &id
	}
	return Summary{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Role:     a.Role,
		VendorID: vendorID,
	}
}
