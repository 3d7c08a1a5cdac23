package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clavel/clavelparts/internal/domain"
)

type VehicleRepo struct{ db *gorm.DB }

func NewVehicleRepo(db *gorm.DB) *VehicleRepo { return &VehicleRepo{db: db} }

func (r *VehicleRepo) Brands(ctx context.Context) ([]domain.Brand, error) {
	var list []domain.Brand
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *VehicleRepo) ModelsByBrand(ctx context.Context, brandID string) ([]domain.Model, error) {
	var list []domain.Model
	if err := r.db.WithContext(ctx).Where("brand_id = ?", brandID).Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *VehicleRepo) VersionsByModel(ctx context.Context, modelID string) ([]domain.Version, error) {
	var list []domain.Version
	if err := r.db.WithContext(ctx).Where("model_id = ?", modelID).Order("year_from asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
