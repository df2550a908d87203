package services

import (
	"context"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"

	"github.com/shopspring/decimal"
)

// Note: every remote call takes the acting admin's bearer token explicitly.
// The api.Client implements all of the interfaces below.

// AuthAPI exchanges credentials for a remote API token
type AuthAPI interface {
	Login(ctx context.Context, idNumber, password string) (*domain.LoginResult, error)
}

// UserAPI covers registrations and point balances
type UserAPI interface {
	PendingUsers(ctx context.Context, token string) ([]domain.User, error)
	ApprovedUsers(ctx context.Context, token string) ([]domain.User, error)
	UpdateUserStatus(ctx context.Context, token string, userID int64, status domain.UserStatus) error
	AddPoints(ctx context.Context, token string, userID int64, amount decimal.Decimal, description string) (*domain.PointsResult, error)
}

// OrderAPI covers diamond orders
type OrderAPI interface {
	PendingOrders(ctx context.Context, token string) ([]domain.Order, error)
	RejectedOrders(ctx context.Context, token string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int64, status domain.OrderStatus) error
}

// TransactionAPI reads the transaction ledger
type TransactionAPI interface {
	Transactions(ctx context.Context, token string, filter search.Filter, limit int) ([]domain.Transaction, error)
}

// ReportAPI reads weekly aggregates
type ReportAPI interface {
	WeeklyReport(ctx context.Context, token, weekStart string) (*domain.WeeklyReport, error)
}

// AnnouncementAPI covers announcement CRUD
type AnnouncementAPI interface {
	Announcements(ctx context.Context, token string) ([]domain.Announcement, error)
	CreateAnnouncement(ctx context.Context, token string, a *domain.Announcement) (*domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, token string, id int64, a *domain.Announcement) (*domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, token string, id int64) error
}

// Notifier fans an event out to every open dashboard stream
type Notifier interface {
	Broadcast(event domain.Event)
}
