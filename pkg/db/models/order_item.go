package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a line of an archived order. CancellationRequested is flipped
// when the customer asks to void the line after finalization; the row itself
// is never deleted.
type OrderItem struct {
	ID                    uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID               uuid.UUID       `gorm:"column:order_id;type:uuid;index;not null"`
	ProductID             string          `gorm:"column:product_id;not null"`
	ProductName           string          `gorm:"column:product_name;not null"`
	Quantity              int             `gorm:"column:quantity;not null"`
	UnitPrice             decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	LineSubtotal          decimal.Decimal `gorm:"column:line_subtotal;type:numeric(10,2);not null"`
	CancellationRequested bool            `gorm:"column:cancellation_requested;not null;default:false"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
