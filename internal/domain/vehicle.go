package domain

// Taxonomía de vehículos en tres niveles: marca → modelo → versión.
// Todo Model.BrandID referencia una Brand existente y todo Version.ModelID
// un Model existente; los seeds lo garantizan.

type Brand struct {
	ID   string `gorm:"primaryKey;size:60" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

type Model struct {
	ID      string `gorm:"primaryKey;size:60" json:"id"`
	BrandID string `gorm:"size:60;index" json:"brandId"`
	Name    string `gorm:"size:100;not null" json:"name"`
}

type Version struct {
	ID       string `gorm:"primaryKey;size:60" json:"id"`
	ModelID  string `gorm:"size:60;index" json:"modelId"`
	Name     string `gorm:"size:100;not null" json:"name"`
	YearFrom int    `json:"yearFrom"`
	YearTo   int    `json:"yearTo"`
}
