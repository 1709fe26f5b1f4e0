package products

// ListFilter narrows the public catalogue. Search is matched case-insensitively.
type ListFilter struct {
	VendorID string
	Search   string
}

// CreateProductInput carries validated fields for a new product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	Inventory      int
	Images         []string
	Tags           []string
	Customizations []any
	IsActive       bool
}

// UpdateProductInput is a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Inventory   *int
	IsActive    *bool
}
