package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavel/clavelparts/internal/adapters/repo/memory"
	"github.com/clavel/clavelparts/internal/domain"
)

func newProductUC() *ProductUC {
	return &ProductUC{Products: memory.NewProductRepo(memory.SeedProducts())}
}

func TestProductUCGetByID(t *testing.T) {
	uc := newProductUC()
	ctx := context.Background()

	p, err := uc.GetByID(ctx, "chip-racing-onix")
	require.NoError(t, err)
	assert.Equal(t, "Chip performance ONIX LT 1.4", p.Name)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUCHighlighted(t *testing.T) {
	uc := newProductUC()
	got, err := uc.Highlighted(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, p := range got {
		assert.True(t, p.Highlighted)
	}
}

func TestProductUCCreate(t *testing.T) {
	uc := newProductUC()
	ctx := context.Background()

	p := &domain.Product{Name: "Bujía NGK Iridium", Price: 12000, Category: domain.CategoryRacing}
	require.NoError(t, uc.Create(ctx, p))
	assert.Equal(t, "bujia-ngk-iridium", p.ID, "el id sale del nombre normalizado")

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)

	assert.Error(t, uc.Create(ctx, &domain.Product{Name: "", Price: 1, Category: domain.CategoryRacing}))
	assert.Error(t, uc.Create(ctx, &domain.Product{Name: "x", Price: -1, Category: domain.CategoryRacing}))
	assert.Error(t, uc.Create(ctx, &domain.Product{Name: "x", Price: 1, Category: "categoria-falsa"}))
}

func TestProductUCUpdateParcial(t *testing.T) {
	uc := newProductUC()
	ctx := context.Background()

	price := 45000.0
	highlighted := false
	p, err := uc.Update(ctx, "aceite-castrol-5w30-gol-trend", domain.ProductPatch{
		Price:       &price,
		Highlighted: &highlighted,
	})
	require.NoError(t, err)
	assert.Equal(t, 45000.0, p.Price)
	assert.False(t, p.Highlighted)
	// los campos sin patch quedan intactos
	assert.Equal(t, "Aceite sintético Castrol 5W-30", p.Name)
	assert.Equal(t, "Castrol", p.BrandLabel)

	_, err = uc.Update(ctx, "no-existe", domain.ProductPatch{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUCDelete(t *testing.T) {
	uc := newProductUC()
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, "kit-filtros-service-fiesta"))
	_, err := uc.GetByID(ctx, "kit-filtros-service-fiesta")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Error(t, uc.Delete(ctx, " "))
}
