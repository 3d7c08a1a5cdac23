package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clavel/clavelparts/internal/domain"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type OrderUC struct {
	Orders domain.OrderRepo
	Now    func() time.Time
}

// CreateOrderInput es el payload del checkout, validado acá antes de tocar
// el dominio.
type CreateOrderInput struct {
	Items           []domain.CartLine
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Notes           string
}

func (uc *OrderUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Create arma la orden desde el carrito, la persiste y devuelve la
// confirmación con número CP-AAAAMM-#####.
func (uc *OrderUC) Create(ctx context.Context, in CreateOrderInput) (*domain.OrderConfirmation, error) {
	if len(in.Items) == 0 {
		return nil, errors.New("carrito vacío")
	}
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, errors.New("faltan datos")
	}
	if !emailRe.MatchString(strings.TrimSpace(in.CustomerEmail)) {
		return nil, errors.New("email inválido")
	}

	now := uc.now()
	o := &domain.Order{
		ID:              uuid.New(),
		OrderNumber:     orderNumber(now),
		Status:          domain.OrderStatusConfirmed,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
	}
	total := 0.0
	for _, it := range in.Items {
		if it.Quantity < 1 {
			continue
		}
		o.Items = append(o.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Quantity,
			UnitPrice: it.Price,
		})
		total += it.Price * float64(it.Quantity)
	}
	if len(o.Items) == 0 {
		return nil, errors.New("carrito vacío")
	}
	o.Total = total

	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return &domain.OrderConfirmation{ID: o.ID, OrderNumber: o.OrderNumber, CreatedAt: o.CreatedAt}, nil
}

func orderNumber(now time.Time) string {
	return fmt.Sprintf("CP-%s-%05d", now.Format("200601"), now.UnixMilli()%100000)
}
