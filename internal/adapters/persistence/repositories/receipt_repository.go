package repositories

import (
	"context"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// receiptRepository implements ReceiptRepository interface
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

// Create stores a receipt
func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

// ListRecent returns the newest receipts
func (r *receiptRepository) ListRecent(ctx context.Context, limit int) ([]*models.Receipt, error) {
	var receipts []*models.Receipt
	err := r.db.WithContext(ctx).
		Order("issued_at DESC").
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

// GetByNumber gets a receipt by its receipt number
func (r *receiptRepository) GetByNumber(ctx context.Context, number string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).Where("receipt_number = ?", number).First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
