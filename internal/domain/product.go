package domain

import "time"

type Category string

const (
	CategoryAceites    Category = "aceites"
	CategoryNeumaticos Category = "neumaticos"
	CategoryFiltros    Category = "filtros"
	CategoryOffroad    Category = "offroad"
	CategoryRacing     Category = "racing"
)

// Categories en orden de exhibición del catálogo.
var Categories = []Category{CategoryAceites, CategoryNeumaticos, CategoryFiltros, CategoryOffroad, CategoryRacing}

func (c Category) Valid() bool {
	switch c {
	case CategoryAceites, CategoryNeumaticos, CategoryFiltros, CategoryOffroad, CategoryRacing:
		return true
	}
	return false
}

// Compatibility vincula un producto con una versión de vehículo. Referencias
// colgantes (versión inexistente) se toleran: no matchean, nunca fallan.
type Compatibility struct {
	VersionID string `json:"versionId"`
	Note      string `json:"note,omitempty"`
}

type Product struct {
	ID            string          `gorm:"primaryKey;size:140" json:"id"`
	Name          string          `gorm:"size:180;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Category      Category        `gorm:"size:30;index" json:"category"`
	Price         float64         `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL      string          `gorm:"size:255" json:"imageUrl"`
	BrandLabel    string          `gorm:"size:100" json:"brandLabel,omitempty"`
	Tags          []string        `gorm:"type:jsonb;serializer:json" json:"tags,omitempty"`
	Compatibility []Compatibility `gorm:"type:jsonb;serializer:json" json:"compatibility"`
	Stock         *int            `json:"stock,omitempty"`
	Highlighted   bool            `gorm:"default:false;index" json:"highlighted,omitempty"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

func (p Product) CompatibleWith(versionID string) bool {
	for _, c := range p.Compatibility {
		if c.VersionID == versionID {
			return true
		}
	}
	return false
}

// ProductFilter son los filtros del catálogo. Campos vacíos no filtran.
type ProductFilter struct {
	Category  Category
	VersionID string
	Search    string
}

func (f ProductFilter) Empty() bool {
	return f.Category == "" && f.VersionID == "" && f.Search == ""
}

// ProductPatch lleva los campos de una actualización parcial.
// Punteros nil significan "sin cambio".
type ProductPatch struct {
	Name          *string         `json:"name,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Category      *Category       `json:"category,omitempty"`
	Price         *float64        `json:"price,omitempty"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	BrandLabel    *string         `json:"brandLabel,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Compatibility []Compatibility `json:"compatibility,omitempty"`
	Stock         *int            `json:"stock,omitempty"`
	Highlighted   *bool           `json:"highlighted,omitempty"`
}
