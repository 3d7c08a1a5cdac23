// Package memory provee repos en memoria con los datos de la etapa inicial.
// Sirven para correr sin base de datos y para los tests; la interfaz es la
// misma que la de los repos postgres.
package memory

import (
	"context"
	"sync"

	"github.com/clavel/clavelparts/internal/domain"
)

func intPtr(n int) *int { return &n }

// SeedProducts es el catálogo inicial de CLAVELPARTS.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "aceite-castrol-5w30-gol-trend",
			Name:        "Aceite sintético Castrol 5W-30",
			Description: "Lubricante sintético de alto rendimiento para motores nafteros, ideal para Volkswagen Gol Trend 1.6.",
			Category:    domain.CategoryAceites,
			Price:       42000,
			ImageURL:    "/images/products/aceite-castrol-5w30.jpg",
			BrandLabel:  "Castrol",
			Tags:        []string{"motor", "naftero", "service"},
			Compatibility: []domain.Compatibility{
				{VersionID: "gol-trend-16", Note: "Recomendado para servicio cada 10.000 km"},
			},
			Stock:       intPtr(12),
			Highlighted: true,
		},
		{
			ID:          "filtro-aceite-mann-gol-trend",
			Name:        "Filtro de aceite Mann W712/95",
			Description: "Filtro de aceite Mann original para Volkswagen Gol Trend 1.6. Máxima protección contra impurezas.",
			Category:    domain.CategoryFiltros,
			Price:       9500,
			ImageURL:    "/images/products/filtro-aceite-mann.jpg",
			BrandLabel:  "Mann Filter",
			Tags:        []string{"motor", "service"},
			Compatibility: []domain.Compatibility{
				{VersionID: "gol-trend-16"},
			},
			Stock: intPtr(30),
		},
		{
			ID:          "neumatico-pirelli-scorpion-amarok",
			Name:        "Neumático Pirelli Scorpion ATR 245/65R17",
			Description: "Neumático all-terrain Pirelli Scorpion ATR para uso mixto ciudad/offroad. Excelente agarre en Amarok.",
			Category:    domain.CategoryNeumaticos,
			Price:       165000,
			ImageURL:    "/images/products/pirelli-scorpion-atr.jpg",
			BrandLabel:  "Pirelli",
			Tags:        []string{"offroad", "pickup"},
			Compatibility: []domain.Compatibility{
				{VersionID: "amarok-hig-20", Note: "Medida sugerida para uso mixto"},
			},
			Stock:       intPtr(8),
			Highlighted: true,
		},
		{
			ID:          "kit-filtros-service-fiesta",
			Name:        "Kit de filtros service Ford Fiesta",
			Description: "Kit completo de filtros (aceite, aire y habitáculo) para Ford Fiesta Titanium. Ideal para service anual.",
			Category:    domain.CategoryFiltros,
			Price:       38000,
			ImageURL:    "/images/products/kit-filtros-fiesta.jpg",
			BrandLabel:  "Motorcraft",
			Tags:        []string{"service", "original"},
			Compatibility: []domain.Compatibility{
				{VersionID: "fiesta-titanium"},
			},
			Stock: intPtr(15),
		},
		{
			ID:          "chip-racing-onix",
			Name:        "Chip performance ONIX LT 1.4",
			Description: "Módulo de potencia plug&play para Chevrolet Onix LT 1.4. Mejora respuesta y entrega de torque.",
			Category:    domain.CategoryRacing,
			Price:       98000,
			ImageURL:    "/images/products/chip-onix-racing.jpg",
			BrandLabel:  "RacingLab",
			Tags:        []string{"performance", "tuning"},
			Compatibility: []domain.Compatibility{
				{VersionID: "onix-lt-14"},
			},
			Stock:       intPtr(5),
			Highlighted: true,
		},
		{
			ID:          "barra-led-offroad-universal",
			Name:        "Barra LED offroad 20\" universal",
			Description: "Barra de LED de alta potencia para uso offroad, carcasa de aluminio y soporte universal.",
			Category:    domain.CategoryOffroad,
			Price:       52000,
			ImageURL:    "/images/products/barra-led-offroad.jpg",
			Tags:        []string{"offroad", "iluminacion"},
			Compatibility: []domain.Compatibility{
				{VersionID: "amarok-hig-20"},
				{VersionID: "ranger-xlt"},
			},
			Stock: intPtr(20),
		},
	}
}

type ProductRepo struct {
	mu    sync.RWMutex
	items []domain.Product
}

func NewProductRepo(seed []domain.Product) *ProductRepo {
	items := make([]domain.Product, len(seed))
	copy(items, seed)
	return &ProductRepo{items: items}
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Save inserta al final o reemplaza in-place conservando el orden de alta.
func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == p.ID {
			r.items[i] = *p
			return nil
		}
	}
	r.items = append(r.items, *p)
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}
