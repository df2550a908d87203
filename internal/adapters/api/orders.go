package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
)

// PendingOrders lists orders awaiting fulfilment
func (c *Client) PendingOrders(ctx context.Context, token string) ([]domain.Order, error) {
	raw, err := c.do(ctx, http.MethodGet, "/orders/pending", token, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Order](raw, "orders")
}

// RejectedOrders lists refunded orders
func (c *Client) RejectedOrders(ctx context.Context, token string) ([]domain.Order, error) {
	raw, err := c.do(ctx, http.MethodGet, "/orders/rejected", token, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Order](raw, "orders")
}

// UpdateOrderStatus completes or rejects an order. Rejection refunds the
// user's points on the server side.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status domain.OrderStatus) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", orderID), token, nil, statusRequest{
		Status: string(status),
	})
	return err
}
