package accounts

import "github.com/craftcollective/craft-market/pkg/enums"

// RegisterInput carries validated registration fields. VendorID optionally links an
// existing storefront when Role is vendor.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     enums.Role
	VendorID string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string  `json:"token"`
	User  Summary `json:"user"`
}
