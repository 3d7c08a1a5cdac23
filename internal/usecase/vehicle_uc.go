package usecase

import (
	"context"
	"strings"

	"github.com/clavel/clavelparts/internal/domain"
)

type VehicleUC struct {
	Vehicles domain.VehicleRepo
}

func (uc *VehicleUC) Brands(ctx context.Context) ([]domain.Brand, error) {
	return uc.Vehicles.Brands(ctx)
}

func (uc *VehicleUC) Models(ctx context.Context, brandID string) ([]domain.Model, error) {
	if strings.TrimSpace(brandID) == "" {
		return []domain.Model{}, nil
	}
	return uc.Vehicles.ModelsByBrand(ctx, brandID)
}

func (uc *VehicleUC) Versions(ctx context.Context, modelID string) ([]domain.Version, error) {
	if strings.TrimSpace(modelID) == "" {
		return []domain.Version{}, nil
	}
	return uc.Vehicles.VersionsByModel(ctx, modelID)
}
