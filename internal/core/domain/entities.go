package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role represents a user role reported by the remote API
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// UserStatus is the registration status of a user
type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusApproved UserStatus = "APPROVED"
	UserStatusRejected UserStatus = "REJECTED"
)

// OrderStatus is the status of a diamond order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusRejected  OrderStatus = "REJECTED"
)

// TransactionType is the ledger direction of a transaction
type TransactionType string

const (
	TransactionAdded    TransactionType = "ADDED"
	TransactionDeducted TransactionType = "DEDUCTED"
	TransactionRefunded TransactionType = "REFUNDED"
)

// User is a registered user, pending or approved
type User struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Nickname  string          `json:"nickname,omitempty"`
	Email     string          `json:"email"`
	IDNumber  string          `json:"idNumber"`
	Status    UserStatus      `json:"status,omitempty"`
	FacePhoto string          `json:"facePhoto,omitempty"`
	Points    decimal.Decimal `json:"points"`
	Role      Role            `json:"role,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// DisplayName prefers the nickname when present
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Name
}

// ResolvePhoto turns a relative face photo path into an absolute URL
func (u *User) ResolvePhoto(baseURL string) {
	if u.FacePhoto == "" || baseURL == "" {
		return
	}
	if strings.HasPrefix(u.FacePhoto, "http://") || strings.HasPrefix(u.FacePhoto, "https://") || strings.HasPrefix(u.FacePhoto, "data:") {
		return
	}
	u.FacePhoto = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(u.FacePhoto, "/")
}

// Order is a diamond purchase request
type Order struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	UserID        int64           `json:"userId"`
	User          *User           `json:"user,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	PlayerID      string          `json:"playerId,omitempty"`
	Quantity      int64           `json:"quantity"`
	DiamondAmount decimal.Decimal `json:"diamondAmount"`
	PointsUsed    decimal.Decimal `json:"pointsUsed"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

// Transaction is an immutable ledger record
type Transaction struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	User         *User           `json:"user,omitempty"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Description  string          `json:"description"`
	AdminID      *int64          `json:"adminId,omitempty"`
	Admin        *User           `json:"admin,omitempty"`
	OrderID      *int64          `json:"orderId,omitempty"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`

	// DisplayAmount is computed locally, see the rewards package
	DisplayAmount decimal.Decimal `json:"displayAmount"`
}

// WeeklyTotals aggregates a calendar week
type WeeklyTotals struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalOrders   int64           `json:"totalOrders"`
	TotalDiamonds int64           `json:"totalDiamonds"`
	TotalRewards  decimal.Decimal `json:"totalRewards"`
	ActiveUsers   int64           `json:"activeUsers"`
}

// WeeklyUserReport is one row of the per-user breakdown
type WeeklyUserReport struct {
	UserID   int64           `json:"userId"`
	Name     string          `json:"name"`
	Nickname string          `json:"nickname,omitempty"`
	Email    string          `json:"email"`
	IDNumber string          `json:"idNumber"`
	Sales    decimal.Decimal `json:"sales"`
	Orders   int64           `json:"orders"`
	Diamonds int64           `json:"diamonds"`
	Reward   decimal.Decimal `json:"reward"`
}

// WeeklyReport is the weekly sales and reward aggregate
type WeeklyReport struct {
	WeekStart      string             `json:"weekStart"`
	WeekEnd        string             `json:"weekEnd"`
	AvailableWeeks []string           `json:"availableWeeks"`
	Totals         WeeklyTotals       `json:"totals"`
	Users          []WeeklyUserReport `json:"users"`
}

// AnnouncementType classifies how an announcement is displayed
type AnnouncementType string

const (
	AnnouncementInfo      AnnouncementType = "info"
	AnnouncementWarning   AnnouncementType = "warning"
	AnnouncementSuccess   AnnouncementType = "success"
	AnnouncementPromotion AnnouncementType = "promotion"
)

// Valid reports whether t is a known announcement type
func (t AnnouncementType) Valid() bool {
	switch t {
	case AnnouncementInfo, AnnouncementWarning, AnnouncementSuccess, AnnouncementPromotion:
		return true
	}
	return false
}

// Announcement is a site announcement
type Announcement struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      AnnouncementType `json:"type"`
	IsActive  bool             `json:"isActive"`
	CreatedAt *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

// Receipt summarizes a completed points addition
type Receipt struct {
	ReceiptNumber    string          `json:"receiptNumber"`
	UserID           int64           `json:"userId"`
	ReceiverName     string          `json:"receiverName"`
	ReceiverIDNumber string          `json:"receiverIdNumber,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	NewBalance       decimal.Decimal `json:"newBalance"`
	Description      string          `json:"description,omitempty"`
	AdminID          int64           `json:"adminId,omitempty"`
	AdminName        string          `json:"adminName"`
	IssuedAt         time.Time       `json:"issuedAt"`
}

// PointsResult is the outcome of adding points to a user
type PointsResult struct {
	Balance decimal.Decimal `json:"balance"`
	User    *User           `json:"user,omitempty"`
	Receipt *Receipt        `json:"receipt,omitempty"`
}

// LoginResult is the remote API answer to a login
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the authenticated admin attached to a request.
// Token is the bearer credential for the remote API.
type Session struct {
	Token     string
	AdminID   int64
	AdminName string
	IDNumber  string
	Role      Role
	ExpiresAt time.Time
}
