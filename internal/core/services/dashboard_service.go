package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DashboardService builds the landing page summary
type DashboardService struct {
	users  UserAPI
	orders OrderAPI
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(users UserAPI, orders OrderAPI) *DashboardService {
	return &DashboardService{users: users, orders: orders}
}

// DashboardSummary represents the admin landing page counters
type DashboardSummary struct {
	PendingUsers    int             `json:"pendingUsers"`
	ApprovedUsers   int             `json:"approvedUsers"`
	TotalPoints     decimal.Decimal `json:"totalPoints"`
	PendingOrders   int             `json:"pendingOrders"`
	RejectedOrders  int             `json:"rejectedOrders"`
	PendingDiamonds int64           `json:"pendingDiamonds"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

// Summary fetches the four lists concurrently and counts them
func (s *DashboardService) Summary(ctx context.Context, sess *domain.Session) (*DashboardSummary, error) {
	var (
		pending, approved []domain.User
		pendingOrders     []domain.Order
		rejectedOrders    []domain.Order
		wg                sync.WaitGroup
		mu                sync.Mutex
		firstErr          error
	)

	fail := func(what string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to load %s: %w", what, err)
		}
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if pending, err = s.users.PendingUsers(ctx, sess.Token); err != nil {
			fail("pending users", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if approved, err = s.users.ApprovedUsers(ctx, sess.Token); err != nil {
			fail("approved users", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if pendingOrders, err = s.orders.PendingOrders(ctx, sess.Token); err != nil {
			fail("pending orders", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if rejectedOrders, err = s.orders.RejectedOrders(ctx, sess.Token); err != nil {
			fail("rejected orders", err)
		}
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	summary := &DashboardSummary{
		PendingUsers:   len(pending),
		ApprovedUsers:  len(approved),
		TotalPoints:    decimal.Zero,
		PendingOrders:  len(pendingOrders),
		RejectedOrders: len(rejectedOrders),
		GeneratedAt:    time.Now(),
	}
	for _, u := range approved {
		summary.TotalPoints = summary.TotalPoints.Add(u.Points)
	}
	for _, o := range pendingOrders {
		summary.PendingDiamonds += o.Quantity
	}

	return summary, nil
}
