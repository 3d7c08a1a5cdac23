package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber     string      `gorm:"size:30;uniqueIndex" json:"orderNumber"`
	Status          OrderStatus `gorm:"type:varchar(30);index" json:"status"`
	Items           []OrderItem `json:"items"`
	CustomerName    string      `gorm:"size:140" json:"customerName"`
	CustomerEmail   string      `gorm:"size:140" json:"customerEmail"`
	CustomerPhone   string      `gorm:"size:50" json:"customerPhone,omitempty"`
	ShippingAddress string      `gorm:"size:255" json:"shippingAddress"`
	Notes           string      `gorm:"type:text" json:"notes,omitempty"`
	Total           float64     `gorm:"type:decimal(12,2)" json:"total"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"-"`
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"-"`
	ProductID string    `gorm:"size:140" json:"productId"`
	Name      string    `gorm:"size:180" json:"name"`
	Qty       int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(12,2)" json:"price"`
}

// OrderConfirmation es lo que ve el comprador al cerrar el checkout.
type OrderConfirmation struct {
	ID          uuid.UUID `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}
