package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavel/clavelparts/internal/domain"
)

func TestProductRepoConservaOrdenDeAlta(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo(SeedProducts())

	p, err := r.FindByID(ctx, "chip-racing-onix")
	require.NoError(t, err)

	// reemplazar no cambia la posición
	p.Price = 105000
	require.NoError(t, r.Save(ctx, p))

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chip-racing-onix", list[4].ID)
	assert.Equal(t, 105000.0, list[4].Price)

	// insertar va al final
	require.NoError(t, r.Save(ctx, &domain.Product{ID: "nuevo", Name: "Nuevo", Category: domain.CategoryRacing}))
	list, _ = r.List(ctx)
	assert.Equal(t, "nuevo", list[len(list)-1].ID)
}

func TestProductRepoDevuelveCopias(t *testing.T) {
	ctx := context.Background()
	r := NewProductRepo(SeedProducts())

	p, err := r.FindByID(ctx, "aceite-castrol-5w30-gol-trend")
	require.NoError(t, err)
	p.Name = "mutado"

	again, err := r.FindByID(ctx, "aceite-castrol-5w30-gol-trend")
	require.NoError(t, err)
	assert.Equal(t, "Aceite sintético Castrol 5W-30", again.Name)
}

func TestVehicleRepoCascada(t *testing.T) {
	ctx := context.Background()
	r := NewVehicleRepo()

	brands, err := r.Brands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 3)

	models, err := r.ModelsByBrand(ctx, "vw")
	require.NoError(t, err)
	assert.Len(t, models, 2)

	versions, err := r.VersionsByModel(ctx, "amarok")
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "amarok-hig-20", versions[0].ID)

	// marca desconocida: lista vacía, no error
	models, err = r.ModelsByBrand(ctx, "nada")
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestSnapshotStore(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshotStore()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Put(ctx, "k", []byte("v1")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// el valor devuelto es una copia
	got[0] = 'x'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("v1"), again)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
