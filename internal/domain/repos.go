package domain

import "context"

type ProductRepo interface {
	// List devuelve el catálogo completo en orden canónico (orden de alta).
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}

type VehicleRepo interface {
	Brands(ctx context.Context) ([]Brand, error)
	ModelsByBrand(ctx context.Context, brandID string) ([]Model, error)
	VersionsByModel(ctx context.Context, modelID string) ([]Version, error)
}

type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
}

type CustomerRepo interface {
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}

// SnapshotStore es el almacén clave-valor abstracto donde se persisten los
// snapshots de carrito, sesión y tema. Get devuelve ErrNotFound cuando la
// clave no existe; un snapshot malformado se trata como ausente, no como
// error, porque no hay camino de recuperación que haga algo con la
// diferencia.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Claves fijas de snapshot, heredadas del frontend original.
const (
	SnapshotKeyCart  = "clavelparts_cart_v1"
	SnapshotKeyUser  = "clavelparts_auth_user_v1"
	SnapshotKeyTheme = "clavelparts_theme_v1"
)
