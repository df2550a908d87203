package services

import (
	"context"
	"fmt"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
)

// OrderService handles diamond order review
type OrderService struct {
	api        OrderAPI
	audit      *AuditService
	notifier   Notifier
	uploadsURL string
}

// NewOrderService creates a new order service
func NewOrderService(api OrderAPI, audit *AuditService, notifier Notifier, uploadsURL string) *OrderService {
	return &OrderService{
		api:        api,
		audit:      audit,
		notifier:   notifier,
		uploadsURL: uploadsURL,
	}
}

// UpdateOrderStatusInput represents a complete/reject request
type UpdateOrderStatusInput struct {
	OrderID int64
	Status  domain.OrderStatus
	Confirm bool
}

// ListPending returns orders awaiting fulfilment
func (s *OrderService) ListPending(ctx context.Context, sess *domain.Session) ([]domain.Order, error) {
	orders, err := s.api.PendingOrders(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}
	s.resolvePhotos(orders)
	return orders, nil
}

// ListRejected returns refunded orders
func (s *OrderService) ListRejected(ctx context.Context, sess *domain.Session) ([]domain.Order, error) {
	orders, err := s.api.RejectedOrders(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to list rejected orders: %w", err)
	}
	s.resolvePhotos(orders)
	return orders, nil
}

// UpdateStatus completes or rejects an order. Rejection refunds points and
// is only sent when confirmed.
func (s *OrderService) UpdateStatus(ctx context.Context, sess *domain.Session, input *UpdateOrderStatusInput) error {
	var action string
	switch input.Status {
	case domain.OrderStatusCompleted:
		action = ActionOrderComplete
	case domain.OrderStatusRejected:
		if !input.Confirm {
			return domain.ErrConfirmationRequired
		}
		action = ActionOrderReject
	default:
		return domain.ErrInvalidStatus
	}

	err := s.api.UpdateOrderStatus(ctx, sess.Token, input.OrderID, input.Status)
	s.audit.Record(ctx, sess, AuditEntry{
		Action:     action,
		TargetType: "order",
		TargetID:   input.OrderID,
		Err:        err,
	})
	if err != nil {
		return fmt.Errorf("failed to update order %d status: %w", input.OrderID, err)
	}

	s.notifier.Broadcast(domain.NewRefreshEvent(domain.ResourceOrders, action, input.OrderID))
	return nil
}

func (s *OrderService) resolvePhotos(orders []domain.Order) {
	for i := range orders {
		if orders[i].User != nil {
			orders[i].User.ResolvePhoto(s.uploadsURL)
		}
	}
}
