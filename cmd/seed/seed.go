package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/craftcollective/craft-market/internal/blog"
	"github.com/craftcollective/craft-market/internal/products"
	"github.com/craftcollective/craft-market/internal/vendors"
	"github.com/craftcollective/craft-market/pkg/store"
)

// seedResult reports how many records were written per collection.
type seedResult map[string]int

// seedAll fills every empty demo collection. Collections that already hold
// records are left alone so reruns never clobber live data.
func seedAll(ctx context.Context, s *store.Store) (seedResult, error) {
	result := seedResult{}
	var errs error

	n, err := seedCollection(ctx, store.NewCollection[vendors.Vendor](s, store.Vendors), demoVendors())
	errs = multierr.Append(errs, err)
	result[store.Vendors] = n

	n, err = seedCollection(ctx, store.NewCollection[products.Product](s, store.Products), demoProducts())
	errs = multierr.Append(errs, err)
	result[store.Products] = n

	n, err = seedCollection(ctx, store.NewCollection[blog.Post](s, store.Blog), demoPosts())
	errs = multierr.Append(errs, err)
	result[store.Blog] = n

	return result, errs
}

func seedCollection[T any](ctx context.Context, c *store.Collection[T], records []T) (int, error) {
	written := 0
	_, err := c.Update(ctx, func(existing []T) ([]T, error) {
		if len(existing) > 0 {
			return existing, nil
		}
		written = len(records)
		return records, nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", c.Name(), err)
	}
	return written, nil
}

func demoVendors() []vendors.Vendor {
	return []vendors.Vendor{
		{
			ID:             "vndr-clay-and-kiln",
			Name:           "Clay & Kiln",
			Location:       "Asheville, NC",
			Bio:            "Small-batch stoneware thrown and glazed by hand.",
			HeroImage:      "/images/vendors/clay-and-kiln.jpg",
			Categories:     []string{"Ceramics", "Kitchen"},
			Rating:         4.8,
			ShippingPolicy: "Ships within 5 business days.",
			StoreSlug:      "clay-and-kiln",
			Social:         map[string]string{"instagram": "@clayandkiln"},
		},
		{
			ID:             "vndr-loom-house",
			Name:           "Loom House",
			Location:       "Portland, OR",
			Bio:            "Naturally dyed textiles woven on floor looms.",
			HeroImage:      "/images/vendors/loom-house.jpg",
			Categories:     []string{"Textiles"},
			Rating:         4.6,
			ShippingPolicy: "Ships within 7 business days.",
			StoreSlug:      "loom-house",
			Social:         map[string]string{},
		},
	}
}

func demoProducts() []products.Product {
	return []products.Product{
		{
			ID:             "prd-speckled-mug",
			VendorID:       "vndr-clay-and-kiln",
			Name:           "Speckled Mug",
			Description:    "A 12oz mug in speckled oatmeal glaze.",
			Price:          32,
			Inventory:      12,
			Images:         []string{"/images/products/speckled-mug.jpg"},
			Tags:           []string{"mug", "ceramic"},
			Customizations: []any{map[string]any{"name": "Glaze", "options": []any{"Oatmeal", "Celadon"}}},
			IsActive:       true,
		},
		{
			ID:             "prd-serving-bowl",
			VendorID:       "vndr-clay-and-kiln",
			Name:           "Serving Bowl",
			Description:    "Wide stoneware bowl for family dinners.",
			Price:          68,
			Inventory:      4,
			Images:         []string{"/images/products/serving-bowl.jpg"},
			Tags:           []string{"bowl", "ceramic"},
			Customizations: []any{},
			IsActive:       true,
		},
		{
			ID:             "prd-wool-throw",
			VendorID:       "vndr-loom-house",
			Name:           "Wool Throw",
			Description:    "Hand-woven throw dyed with madder root.",
			Price:          145.5,
			Inventory:      3,
			Images:         []string{"/images/products/wool-throw.jpg"},
			Tags:           []string{"blanket", "wool"},
			Customizations: []any{},
			IsActive:       true,
		},
	}
}

func demoPosts() []blog.Post {
	return []blog.Post{
		{
			ID:          "post-meet-the-makers",
			Title:       "Meet the makers",
			Excerpt:     "How our first studios joined the collective.",
			PublishedAt: "2024-03-01",
			Body:        "Every studio on Craft Collective works in small batches and ships from their own workshop.",
		},
		{
			ID:          "post-caring-for-stoneware",
			Title:       "Caring for stoneware",
			Excerpt:     "Keep handmade ceramics looking new.",
			PublishedAt: "2024-04-12",
			Body:        "Hand wash when you can, avoid thermal shock and store pieces with felt between them.",
		},
	}
}
