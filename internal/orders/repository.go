package orders

import (
	"context"
	"fmt"

	"github.com/gelaboca/gelaboca-backend/pkg/db"
	"github.com/gelaboca/gelaboca-backend/pkg/db/models"
)

// Repository persists and queries archived orders.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	FlagCancellation(ctx context.Context, sessionID, productID string) error
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
}

type gormRepository struct {
	client *db.Client
}

// NewRepository builds the GORM-backed order repository.
func NewRepository(client *db.Client) Repository {
	return &gormRepository{client: client}
}

func (r *gormRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.client.DB().WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("creating order: %w", err)
	}
	return nil
}

func (r *gormRepository) FlagCancellation(ctx context.Context, sessionID, productID string) error {
	conn := r.client.DB().WithContext(ctx)
	orderIDs := conn.Model(&models.Order{}).Select("id").Where("session_id = ?", sessionID)

	result := conn.Model(&models.OrderItem{}).
		Where("product_id = ? AND order_id IN (?)", productID, orderIDs).
		Update("cancellation_requested", true)
	if result.Error != nil {
		return fmt.Errorf("flagging cancellation: %w", result.Error)
	}
	return nil
}

func (r *gormRepository) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := r.client.DB().WithContext(ctx).
		Preload("Items").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}
