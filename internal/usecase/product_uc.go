package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/clavel/clavelparts/internal/domain"
)

type ProductUC struct {
	Products domain.ProductRepo
}

// List trae el catálogo completo y lo pasa por el motor de consulta.
func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	all, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return QueryProducts(all, f), nil
}

func (uc *ProductUC) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	return uc.Products.FindByID(ctx, id)
}

// Highlighted devuelve los destacados para la home, en orden de catálogo.
func (uc *ProductUC) Highlighted(ctx context.Context) ([]domain.Product, error) {
	all, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	for _, p := range all {
		if p.Highlighted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return errors.New("nombre vacío")
	}
	if p.Price < 0 {
		return errors.New("precio negativo")
	}
	if !p.Category.Valid() {
		return errors.New("categoría inválida")
	}
	if p.ID == "" {
		p.ID = slugify(p.Name)
	}
	return uc.Products.Save(ctx, p)
}

// Update aplica un patch parcial sobre el producto existente y devuelve el
// registro ya fusionado.
func (uc *ProductUC) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil && patch.Category.Valid() {
		p.Category = *patch.Category
	}
	if patch.Price != nil && *patch.Price >= 0 {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.BrandLabel != nil {
		p.BrandLabel = *patch.BrandLabel
	}
	if patch.Tags != nil {
		p.Tags = patch.Tags
	}
	if patch.Compatibility != nil {
		p.Compatibility = patch.Compatibility
	}
	if patch.Stock != nil && *patch.Stock >= 0 {
		p.Stock = patch.Stock
	}
	if patch.Highlighted != nil {
		p.Highlighted = *patch.Highlighted
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProductUC) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id vacío")
	}
	return uc.Products.Delete(ctx, id)
}

func slugify(s string) string {
	s = normalizeSearchValue(s)
	return strings.ReplaceAll(s, " ", "-")
}
