package models

import (
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AuditLog represents audit_logs table: one row per mutation sent to the remote API
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  string    `gorm:"size:64;index" json:"requestId"`
	AdminID    int64     `gorm:"index;not null" json:"adminId"`
	AdminName  string    `gorm:"size:100" json:"adminName"`
	Action     string    `gorm:"size:50;index;not null" json:"action"`
	TargetType string    `gorm:"size:30" json:"targetType"`
	TargetID   string    `gorm:"size:50" json:"targetId"`
	Detail     string    `gorm:"size:255" json:"detail,omitempty"`
	Success    bool      `gorm:"not null" json:"success"`
	Error      string    `gorm:"size:500" json:"error,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Receipt represents receipts table
type Receipt struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ReceiptNumber    string          `gorm:"uniqueIndex;size:64;not null" json:"receiptNumber"`
	UserID           int64           `gorm:"index;not null" json:"userId"`
	ReceiverName     string          `gorm:"size:100" json:"receiverName"`
	ReceiverIDNumber string          `gorm:"size:30" json:"receiverIdNumber"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	NewBalance       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"newBalance"`
	Description      string          `gorm:"size:255" json:"description"`
	AdminID          int64           `gorm:"index" json:"adminId"`
	AdminName        string          `gorm:"size:100" json:"adminName"`
	IssuedAt         time.Time       `gorm:"index;not null" json:"issuedAt"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}

func (Receipt) TableName() string {
	return "receipts"
}

// NewReceipt converts a domain receipt into its table row
func NewReceipt(r *domain.Receipt) *Receipt {
	return &Receipt{
		ReceiptNumber:    r.ReceiptNumber,
		UserID:           r.UserID,
		ReceiverName:     r.ReceiverName,
		ReceiverIDNumber: r.ReceiverIDNumber,
		Amount:           r.Amount,
		NewBalance:       r.NewBalance,
		Description:      r.Description,
		AdminID:          r.AdminID,
		AdminName:        r.AdminName,
		IssuedAt:         r.IssuedAt,
	}
}

func (r *Receipt) ToDomain() *domain.Receipt {
	return &domain.Receipt{
		ReceiptNumber:    r.ReceiptNumber,
		UserID:           r.UserID,
		ReceiverName:     r.ReceiverName,
		ReceiverIDNumber: r.ReceiverIDNumber,
		Amount:           r.Amount,
		NewBalance:       r.NewBalance,
		Description:      r.Description,
		AdminID:          r.AdminID,
		AdminName:        r.AdminName,
		IssuedAt:         r.IssuedAt,
	}
}

// AutoMigrate runs auto migration for the dashboard's own tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuditLog{},
		&Receipt{},
	)
}
