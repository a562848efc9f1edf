package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks the lifecycle of an archived table order.
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

// Order is the snapshot archived when a table session finalizes its cart.
// Staff review these rows, including pending cancellation requests.
type Order struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SessionID  string          `gorm:"column:session_id;index;not null"`
	Status     OrderStatus     `gorm:"column:status;not null;default:'placed'"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
