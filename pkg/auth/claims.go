package auth

import (
	"github.com/craftcollective/craft-market/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the account data embedded into a JWT.
type AccessTokenPayload struct {
	UserID   string
	Email    string
	Name     string
	Role     enums.Role
	VendorID *string
}

// AccessTokenClaims is the typed JWT issued to clients. VendorID is null for customers.
type AccessTokenClaims struct {
	UserID   string     `json:"id"`
	Email    string     `json:"email"`
	Role     enums.Role `json:"role"`
	Name     string     `json:"name"`
	VendorID *string    `json:"vendorId"`
	jwt.RegisteredClaims
}

// Identity is the caller identity attached to authenticated requests.
type Identity struct {
	ID       string
	Email    string
	Role     enums.Role
	Name     string
	VendorID string
}

// Identity converts the claims into the request identity verbatim.
func (c *AccessTokenClaims) Identity() Identity {
	id := Identity{
		ID:    c.UserID,
		Email: c.Email,
		Role:  c.Role,
		Name:  c.Name,
	}
	if c.VendorID != nil {
		id.VendorID = *c.VendorID
	}
	return id
}
