package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavel/clavelparts/internal/adapters/repo/memory"
	"github.com/clavel/clavelparts/internal/domain"
)

func validOrderInput() CreateOrderInput {
	return CreateOrderInput{
		Items: []domain.CartLine{
			{ProductID: "aceite-castrol-5w30-gol-trend", Name: "Aceite", Price: 42000, Quantity: 2},
			{ProductID: "filtro-aceite-mann-gol-trend", Name: "Filtro", Price: 9500, Quantity: 1},
		},
		CustomerName:    "Juana Pérez",
		CustomerEmail:   "Juana@Example.com",
		ShippingAddress: "Av. Siempreviva 742, Lanús",
	}
}

func TestOrderCreate(t *testing.T) {
	fixed := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo := memory.NewOrderRepo()
	uc := &OrderUC{Orders: repo, Now: func() time.Time { return fixed }}

	conf, err := uc.Create(context.Background(), validOrderInput())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^CP-202603-\d{5}$`), conf.OrderNumber)
	assert.Equal(t, fixed, conf.CreatedAt)

	saved, err := repo.FindByID(context.Background(), conf.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, saved.Status)
	assert.Equal(t, 93500.0, saved.Total)
	assert.Equal(t, "juana@example.com", saved.CustomerEmail)
	require.Len(t, saved.Items, 2)
	assert.Equal(t, 2, saved.Items[0].Qty)
}

func TestOrderCreateValidaciones(t *testing.T) {
	uc := &OrderUC{Orders: memory.NewOrderRepo()}
	ctx := context.Background()

	in := validOrderInput()
	in.Items = nil
	_, err := uc.Create(ctx, in)
	assert.Error(t, err, "carrito vacío")

	in = validOrderInput()
	in.CustomerName = "   "
	_, err = uc.Create(ctx, in)
	assert.Error(t, err)

	in = validOrderInput()
	in.ShippingAddress = ""
	_, err = uc.Create(ctx, in)
	assert.Error(t, err)

	in = validOrderInput()
	in.CustomerEmail = "no-es-email"
	_, err = uc.Create(ctx, in)
	assert.Error(t, err)

	// items con cantidad inválida se descartan; si no queda ninguno, falla
	in = validOrderInput()
	in.Items = []domain.CartLine{{ProductID: "x", Name: "x", Price: 10, Quantity: 0}}
	_, err = uc.Create(ctx, in)
	assert.Error(t, err)
}
