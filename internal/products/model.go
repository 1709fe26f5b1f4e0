package products

import "time"

// Product is a vendor listing. Customizations holds option specs verbatim.
type Product struct {
	ID             string    `json:"id"`
	VendorID       string    `json:"vendorId"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Inventory      int       `json:"inventory"`
	Images         []string  `json:"images"`
	Tags           []string  `json:"tags"`
	Customizations []any     `json:"customizations"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

// Matches reports whether the lower-cased term occurs in the name, description or a tag.
func (p Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	if containsFold(p.Name, term) || containsFold(p.Description, term) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, term) {
			return true
		}
	}
	return false
}
