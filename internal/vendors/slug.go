package vendors

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	fallbackSlug        = "studio"
	placeholderBio      = "This vendor just joined Craft Collective and will update their story soon."
	placeholderImage    = "/images/vendors/placeholder.jpg"
	placeholderLocation = "Set your city"
	placeholderShipping = "Ships after coordinating with the customer."
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases value, collapses non-alphanumeric runs to "-" and trims dashes.
func Slugify(value string) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(value), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// NewPlaceholder builds the storefront created for a vendor who registers without one.
func NewPlaceholder(ownerName string) Vendor {
	ownerName = strings.TrimSpace(ownerName)
	slugSource := ownerName
	if slugSource == "" {
		slugSource = "new-vendor"
		ownerName = "New"
	}
	slug := Slugify(slugSource)
	return Vendor{
		ID:             "vndr-" + slug + "-" + uuid.NewString()[:5],
		Name:           ownerName + " Studio",
		Location:       placeholderLocation,
		Bio:            placeholderBio,
		HeroImage:      placeholderImage,
		Categories:     []string{"Custom"},
		Rating:         0,
		ShippingPolicy: placeholderShipping,
		StoreSlug:      slug,
		Social:         map[string]string{},
	}
}
