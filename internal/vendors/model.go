package vendors

import "github.com/craftcollective/craft-market/internal/products"

// Vendor is a seller storefront.
type Vendor struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Location       string            `json:"location"`
	Bio            string            `json:"bio"`
	HeroImage      string            `json:"heroImage"`
	Categories     []string          `json:"categories"`
	Rating         float64           `json:"rating"`
	ShippingPolicy string            `json:"shippingPolicy"`
	StoreSlug      string            `json:"storeSlug"`
	Social         map[string]string `json:"social"`
}

// Summary is a vendor annotated with the number of products it lists.
type Summary struct {
	Vendor
	ProductCount int `json:"productCount"`
}

// Detail is a vendor with its products embedded.
type Detail struct {
	Vendor
	Products []products.Product `json:"products"`
}
