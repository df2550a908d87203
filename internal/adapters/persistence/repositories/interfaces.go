package repositories

import (
	"context"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/models"
)

// AuditRepository defines audit log repository interface
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReceiptRepository defines receipt repository interface
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	ListRecent(ctx context.Context, limit int) ([]*models.Receipt, error)
	GetByNumber(ctx context.Context, number string) (*models.Receipt, error)
}
