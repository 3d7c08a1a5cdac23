package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavel/clavelparts/internal/adapters/repo/memory"
	"github.com/clavel/clavelparts/internal/domain"
)

func TestNormalizeSearchValue(t *testing.T) {
	cases := map[string]string{
		"Sintético":         "sintetico",
		"  NEUMÁTICO  ":     "neumatico",
		"5W-30":             "5w 30",
		"off/road  4x4":     "off road 4x4",
		"":                  "",
		"¡¿signos?! varios": "signos varios",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeSearchValue(in), "input %q", in)
	}
}

func TestQueryProductsSinFiltrosDevuelveTodo(t *testing.T) {
	all := memory.SeedProducts()
	got := QueryProducts(all, domain.ProductFilter{})
	require.Len(t, got, len(all))
	for i := range all {
		assert.Equal(t, all[i].ID, got[i].ID)
	}
}

func TestQueryProductsBusquedaPorMarca(t *testing.T) {
	all := memory.SeedProducts()
	got := QueryProducts(all, domain.ProductFilter{Search: "castrol"})
	require.Len(t, got, 1)
	assert.Equal(t, "aceite-castrol-5w30-gol-trend", got[0].ID)
}

func TestQueryProductsDiacriticosYAlias(t *testing.T) {
	all := memory.SeedProducts()

	// "sintético" con tilde matchea el nombre normalizado
	got := QueryProducts(all, domain.ProductFilter{Search: "aceite sintético"})
	require.NotEmpty(t, got)
	assert.Equal(t, "aceite-castrol-5w30-gol-trend", got[0].ID)

	// "cubierta" no figura en ningún campo del producto, entra por el alias
	// de la categoría neumáticos
	got = QueryProducts(all, domain.ProductFilter{Search: "cubierta"})
	require.Len(t, got, 1)
	assert.Equal(t, "neumatico-pirelli-scorpion-amarok", got[0].ID)
}

func TestQueryProductsAndEntreTerminos(t *testing.T) {
	all := memory.SeedProducts()

	// ambos términos matchean en el kit de filtros
	got := QueryProducts(all, domain.ProductFilter{Search: "filtro fiesta"})
	require.Len(t, got, 1)
	assert.Equal(t, "kit-filtros-service-fiesta", got[0].ID)

	// un término sin match en ningún campo descarta todo
	got = QueryProducts(all, domain.ProductFilter{Search: "filtro xyzzy123"})
	assert.Empty(t, got)
}

func TestQueryProductsRankingNombreSobreDescripcion(t *testing.T) {
	all := []domain.Product{
		{ID: "en-desc", Name: "Kit de luces", Description: "incluye bujia de cortesía", Category: domain.CategoryOffroad},
		{ID: "en-nombre", Name: "Bujía NGK iridium", Description: "encendido", Category: domain.CategoryRacing},
	}
	got := QueryProducts(all, domain.ProductFilter{Search: "bujia"})
	require.Len(t, got, 2)
	assert.Equal(t, "en-nombre", got[0].ID, "match en nombre pesa más que en descripción")
	assert.Equal(t, "en-desc", got[1].ID)
}

func TestQueryProductsEmpateConservaOrdenDeCatalogo(t *testing.T) {
	all := []domain.Product{
		{ID: "a", Name: "Correa alternador", Category: domain.CategoryFiltros},
		{ID: "b", Name: "Correa distribución", Category: domain.CategoryFiltros},
		{ID: "c", Name: "Correa poly-V", Category: domain.CategoryFiltros},
	}
	got := QueryProducts(all, domain.ProductFilter{Search: "correa"})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestQueryProductsFiltroCategoriaYVersion(t *testing.T) {
	all := memory.SeedProducts()

	got := QueryProducts(all, domain.ProductFilter{Category: domain.CategoryFiltros})
	require.Len(t, got, 2)

	got = QueryProducts(all, domain.ProductFilter{VersionID: "amarok-hig-20"})
	require.Len(t, got, 2)
	assert.Equal(t, "neumatico-pirelli-scorpion-amarok", got[0].ID)
	assert.Equal(t, "barra-led-offroad-universal", got[1].ID)

	// versión desconocida: vacío, no error
	got = QueryProducts(all, domain.ProductFilter{VersionID: "nope"})
	assert.Empty(t, got)

	// categoría desconocida: vacío
	got = QueryProducts(all, domain.ProductFilter{Category: "lanchas"})
	assert.Empty(t, got)
}

func TestQueryProductsNoMutaEntrada(t *testing.T) {
	all := memory.SeedProducts()
	snapshot := memory.SeedProducts()
	_ = QueryProducts(all, domain.ProductFilter{Search: "castrol", Category: domain.CategoryAceites})
	for i := range all {
		assert.Equal(t, snapshot[i].ID, all[i].ID)
		assert.Equal(t, snapshot[i].Name, all[i].Name)
	}
}
