package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"

	"github.com/shopspring/decimal"
)

// PendingUsers lists registrations awaiting approval
func (c *Client) PendingUsers(ctx context.Context, token string) ([]domain.User, error) {
	raw, err := c.do(ctx, http.MethodGet, "/users/pending", token, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.User](raw, "users")
}

// ApprovedUsers lists approved users with their points balances
func (c *Client) ApprovedUsers(ctx context.Context, token string) ([]domain.User, error) {
	raw, err := c.do(ctx, http.MethodGet, "/users/approved", token, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.User](raw, "users")
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateUserStatus approves or rejects a registration
func (c *Client) UpdateUserStatus(ctx context.Context, token string, userID int64, status domain.UserStatus) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/status", userID), token, nil, statusRequest{
		Status: string(status),
	})
	return err
}

type pointsRequest struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description,omitempty"`
}

type pointsResponse struct {
	Balance    *decimal.Decimal `json:"balance"`
	NewBalance *decimal.Decimal `json:"newBalance"`
	User       *domain.User     `json:"user"`
	Receipt    *domain.Receipt  `json:"receipt"`
}

// AddPoints credits points to a user. The receipt is nil when the API
// does not issue one.
func (c *Client) AddPoints(ctx context.Context, token string, userID int64, amount decimal.Decimal, description string) (*domain.PointsResult, error) {
	raw, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/points", userID), token, nil, pointsRequest{
		Amount:      json.Number(amount.String()),
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	var payload pointsResponse
	if err := decodeObject(raw, &payload, "balance", "data"); err != nil {
		return nil, err
	}

	result := &domain.PointsResult{User: payload.User, Receipt: payload.Receipt}
	switch {
	case payload.Balance != nil:
		result.Balance = *payload.Balance
	case payload.NewBalance != nil:
		result.Balance = *payload.NewBalance
	case payload.User != nil:
		result.Balance = payload.User.Points
	}

	return result, nil
}
