package orders

import (
	"context"

	"github.com/gelaboca/gelaboca-backend/internal/cart"
	"github.com/gelaboca/gelaboca-backend/pkg/db/models"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 50

// Service archives finalized carts and serves the staff order views. It
// implements the cart's Archiver.
type Service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the order service.
func NewService(repo Repository, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// ArchiveOrder snapshots a finalized cart as an order row with its lines.
func (s *Service) ArchiveOrder(ctx context.Context, sessionID string, state cart.State) error {
	order := &models.Order{
		ID:         uuid.New(),
		SessionID:  sessionID,
		Status:     models.OrderStatusPlaced,
		TotalPrice: state.TotalPrice(),
	}
	for _, item := range state.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:                    uuid.New(),
			OrderID:               order.ID,
			ProductID:             item.ProductID,
			ProductName:           item.Name,
			Quantity:              item.Quantity,
			UnitPrice:             decimal.NewFromFloat(item.Price),
			LineSubtotal:          item.Subtotal(),
			CancellationRequested: state.IsCancelled(item.ProductID),
		})
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id":    order.ID.String(),
		"session_id":  sessionID,
		"total_price": order.TotalPrice.StringFixed(2),
	}), "order archived")
	return nil
}

// FlagCancellation marks the session's archived lines for the product as
// pending cancellation so staff can act on them.
func (s *Service) FlagCancellation(ctx context.Context, sessionID, productID string) error {
	return s.repo.FlagCancellation(ctx, sessionID, productID)
}

// ListRecent returns the latest archived orders for the staff view.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
