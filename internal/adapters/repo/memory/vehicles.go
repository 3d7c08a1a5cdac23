package memory

import (
	"context"

	"github.com/clavel/clavelparts/internal/domain"
)

func SeedBrands() []domain.Brand {
	return []domain.Brand{
		{ID: "vw", Name: "Volkswagen"},
		{ID: "ford", Name: "Ford"},
		{ID: "chevrolet", Name: "Chevrolet"},
	}
}

func SeedModels() []domain.Model {
	return []domain.Model{
		{ID: "gol", BrandID: "vw", Name: "Gol"},
		{ID: "amarok", BrandID: "vw", Name: "Amarok"},
		{ID: "fiesta", BrandID: "ford", Name: "Fiesta"},
		{ID: "ranger", BrandID: "ford", Name: "Ranger"},
		{ID: "onix", BrandID: "chevrolet", Name: "Onix"},
	}
}

func SeedVersions() []domain.Version {
	return []domain.Version{
		{ID: "gol-trend-16", ModelID: "gol", Name: "Trend 1.6", YearFrom: 2014, YearTo: 2021},
		{ID: "amarok-hig-20", ModelID: "amarok", Name: "Highline 2.0", YearFrom: 2012, YearTo: 2020},
		{ID: "fiesta-titanium", ModelID: "fiesta", Name: "Titanium", YearFrom: 2013, YearTo: 2018},
		{ID: "ranger-xlt", ModelID: "ranger", Name: "XLT 3.2", YearFrom: 2015, YearTo: 2022},
		{ID: "onix-lt-14", ModelID: "onix", Name: "LT 1.4", YearFrom: 2015, YearTo: 2020},
	}
}

type VehicleRepo struct {
	brands   []domain.Brand
	models   []domain.Model
	versions []domain.Version
}

func NewVehicleRepo() *VehicleRepo {
	return &VehicleRepo{brands: SeedBrands(), models: SeedModels(), versions: SeedVersions()}
}

func (r *VehicleRepo) Brands(ctx context.Context) ([]domain.Brand, error) {
	out := make([]domain.Brand, len(r.brands))
	copy(out, r.brands)
	return out, nil
}

func (r *VehicleRepo) ModelsByBrand(ctx context.Context, brandID string) ([]domain.Model, error) {
	out := []domain.Model{}
	for _, m := range r.models {
		if m.BrandID == brandID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *VehicleRepo) VersionsByModel(ctx context.Context, modelID string) ([]domain.Version, error) {
	out := []domain.Version{}
	for _, v := range r.versions {
		if v.ModelID == modelID {
			out = append(out, v)
		}
	}
	return out, nil
}
