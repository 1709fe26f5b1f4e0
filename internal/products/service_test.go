package products

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
	"github.com/craftcollective/craft-market/pkg/store"
)

func newTestService(t *testing.T, seed ...Product) (*service, Repository) {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	repo := NewRepository(s)
	for _, p := range seed {
		_, err := repo.Create(context.Background(), p)
		require.NoError(t, err)
	}
	svc, err := NewService(repo)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return impl, repo
}

func catalogue() []Product {
	return []Product{
		{ID: "prd-mug", VendorID: "vndr-clay", Name: "Speckled Mug", Description: "Stoneware mug", Price: 10, Tags: []string{"ceramic", "kitchen"}},
		{ID: "prd-scarf", VendorID: "vndr-wool", Name: "Wool Scarf", Description: "Hand-knit", Price: 5.5, Tags: []string{"Winter"}},
		{ID: "prd-bowl", VendorID: "vndr-clay", Name: "Serving Bowl", Description: "Large glazed bowl", Price: 32, Tags: []string{}},
	}
}

func ids(items []Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestListFiltersByVendorAndSearch(t *testing.T) {
	svc, _ := newTestService(t, catalogue()...)
	ctx := context.Background()

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"prd-mug", "prd-scarf", "prd-bowl"}, ids(all))

	clay, err := svc.List(ctx, ListFilter{VendorID: "vndr-clay"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prd-mug", "prd-bowl"}, ids(clay))

	byTag, err := svc.List(ctx, ListFilter{Search: "CERAM"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prd-mug"}, ids(byTag))

	byUpperTag, err := svc.List(ctx, ListFilter{Search: "winter"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prd-scarf"}, ids(byUpperTag))

	byDescription, err := svc.List(ctx, ListFilter{VendorID: "vndr-clay", Search: "glazed"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prd-bowl"}, ids(byDescription))
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestService(t, catalogue()...)

	p, err := svc.Get(context.Background(), "prd-mug")
	require.NoError(t, err)
	assert.Equal(t, "Speckled Mug", p.Name)

	_, err = svc.Get(context.Background(), "prd-missing")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
	assert.Equal(t, "Product not found", pkgerrors.As(err).Message())
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	svc, repo := newTestService(t)

	created, err := svc.Create(context.Background(), "vndr-clay", CreateProductInput{
		Name:        "Planter",
		Description: "Terracotta",
		Price:       18,
		IsActive:    true,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^prd-[0-9a-f-]{36}$`, created.ID)
	assert.Equal(t, "vndr-clay", created.VendorID)
	assert.Equal(t, 0, created.Inventory)
	assert.Equal(t, []string{}, created.Images)
	assert.Equal(t, []any{}, created.Customizations)
	assert.True(t, created.IsActive)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, *created, *stored)
}

func TestCreateRequiresLinkedVendor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "", CreateProductInput{Name: "x", Description: "y", Price: 2})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Equal(t, "No vendor store linked to this account", pkgerrors.As(err).Message())
}

func TestUpdateMergesPresentFields(t *testing.T) {
	svc, _ := newTestService(t, catalogue()...)

	price := 12.5
	inactive := false
	updated, err := svc.Update(context.Background(), "vndr-clay", "prd-mug", UpdateProductInput{
		Price:    &price,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Speckled Mug", updated.Name)
	assert.Equal(t, []string{"ceramic", "kitchen"}, updated.Tags)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), updated.UpdatedAt)

	reloaded, err := svc.Get(context.Background(), "prd-mug")
	require.NoError(t, err)
	assert.Equal(t, *updated, *reloaded)
}

func TestUpdateByNonOwnerIsNotFound(t *testing.T) {
	svc, _ := newTestService(t, catalogue()...)

	name := "Stolen"
	_, err := svc.Update(context.Background(), "vndr-wool", "prd-mug", UpdateProductInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	p, err := svc.Get(context.Background(), "prd-mug")
	require.NoError(t, err)
	assert.Equal(t, "Speckled Mug", p.Name)
}

func TestListForVendor(t *testing.T) {
	svc, _ := newTestService(t, catalogue()...)

	items, err := svc.ListForVendor(context.Background(), "vndr-wool")
	require.NoError(t, err)
	assert.Equal(t, []string{"prd-scarf"}, ids(items))

	_, err = svc.ListForVendor(context.Background(), " ")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}
