// Package mocks holds in-memory fakes of the remote API and the local
// repositories for service and handler tests.
package mocks

import (
	"context"
	"sync"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"

	"github.com/shopspring/decimal"
)

// Call records one mutation sent to the fake API
type Call struct {
	Method string
	Token  string
	ID     int64
	Status string
	Amount decimal.Decimal
	Text   string
}

// API is a fake remote API. Set the exported fields to shape answers and
// the *Err fields to make a method fail.
type API struct {
	mu sync.Mutex

	LoginResult   *domain.LoginResult
	Pending       []domain.User
	Approved      []domain.User
	PendingOrd    []domain.Order
	RejectedOrd   []domain.Order
	Txs           []domain.Transaction
	Report        *domain.WeeklyReport
	Announces     []domain.Announcement
	PointsResult  *domain.PointsResult
	LastFilter    search.Filter
	LastLimit     int
	LastWeekStart string

	LoginErr    error
	ListErr     error
	MutationErr error
	PingErr     error

	calls []Call
	reads int
}

// NewAPI creates an empty fake API
func NewAPI() *API {
	return &API{}
}

// Calls returns the mutations received so far
func (a *API) Calls() []Call {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Call, len(a.calls))
	copy(out, a.calls)
	return out
}

// Reads returns how many list calls were made
func (a *API) Reads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reads
}

// SetPendingOrders replaces the pending orders list
func (a *API) SetPendingOrders(orders []domain.Order) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.PendingOrd = orders
}

func (a *API) record(c Call) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, c)
	return a.MutationErr
}

func (a *API) read() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reads++
	return a.ListErr
}

func (a *API) Login(_ context.Context, idNumber, password string) (*domain.LoginResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.LoginErr != nil {
		return nil, a.LoginErr
	}
	if a.LoginResult == nil {
		return nil, domain.ErrInvalidCredentials
	}
	out := *a.LoginResult
	return &out, nil
}

func (a *API) PendingUsers(_ context.Context, _ string) ([]domain.User, error) {
	if err := a.read(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.User{}, a.Pending...), nil
}

func (a *API) ApprovedUsers(_ context.Context, _ string) ([]domain.User, error) {
	if err := a.read(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.User{}, a.Approved...), nil
}

func (a *API) UpdateUserStatus(_ context.Context, token string, userID int64, status domain.UserStatus) error {
	return a.record(Call{Method: "UpdateUserStatus", Token: token, ID: userID, Status: string(status)})
}

func (a *API) AddPoints(_ context.Context, token string, userID int64, amount decimal.Decimal, description string) (*domain.PointsResult, error) {
	if err := a.record(Call{Method: "AddPoints", Token: token, ID: userID, Amount: amount, Text: description}); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.PointsResult == nil {
		return &domain.PointsResult{Balance: amount}, nil
	}
	out := *a.PointsResult
	return &out, nil
}

func (a *API) PendingOrders(_ context.Context, _ string) ([]domain.Order, error) {
	if err := a.read(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Order{}, a.PendingOrd...), nil
}

func (a *API) RejectedOrders(_ context.Context, _ string) ([]domain.Order, error) {
	if err := a.read(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Order{}, a.RejectedOrd...), nil
}

func (a *API) UpdateOrderStatus(_ context.Context, token string, orderID int64, status domain.OrderStatus) error {
	return a.record(Call{Method: "UpdateOrderStatus", Token: token, ID: orderID, Status: string(status)})
}

func (a *API) Transactions(_ context.Context, _ string, filter search.Filter, limit int) ([]domain.Transaction, error) {
	if err := a.read(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.LastFilter = filter
	a.LastLimit = limit
	return append([]domain.Transaction{}, a.Txs...), nil
}

func (a *API) WeeklyReport(_ context.Context, _ string, weekStart string) (*domain.WeeklyReport, error) {
	if err := a.read(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.LastWeekStart = weekStart
	if a.Report == nil {
		return &domain.WeeklyReport{WeekStart: weekStart, Users: []domain.WeeklyUserReport{}}, nil
	}
	out := *a.Report
	out.Users = append([]domain.WeeklyUserReport{}, a.Report.Users...)
	return &out, nil
}

func (a *API) Announcements(_ context.Context, _ string) ([]domain.Announcement, error) {
	if err := a.read(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Announcement{}, a.Announces...), nil
}

func (a *API) CreateAnnouncement(_ context.Context, token string, in *domain.Announcement) (*domain.Announcement, error) {
	if err := a.record(Call{Method: "CreateAnnouncement", Token: token, Text: in.Title}); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := *in
	out.ID = int64(len(a.Announces) + 1)
	a.Announces = append(a.Announces, out)
	return &out, nil
}

func (a *API) UpdateAnnouncement(_ context.Context, token string, id int64, in *domain.Announcement) (*domain.Announcement, error) {
	if err := a.record(Call{Method: "UpdateAnnouncement", Token: token, ID: id, Text: in.Title, Status: activeFlag(in.IsActive)}); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := *in
	out.ID = id
	for i := range a.Announces {
		if a.Announces[i].ID == id {
			a.Announces[i] = out
		}
	}
	return &out, nil
}

func (a *API) DeleteAnnouncement(_ context.Context, token string, id int64) error {
	return a.record(Call{Method: "DeleteAnnouncement", Token: token, ID: id})
}

func (a *API) Ping(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.PingErr
}

func activeFlag(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// Notifier records broadcast events
type Notifier struct {
	mu     sync.Mutex
	events []domain.Event
}

// Broadcast records event
func (n *Notifier) Broadcast(event domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events returns the recorded events
func (n *Notifier) Events() []domain.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Event, len(n.events))
	copy(out, n.events)
	return out
}
