package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/repositories"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ReceiptService reads receipts issued by add-points actions
type ReceiptService struct {
	repo repositories.ReceiptRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(repo repositories.ReceiptRepository) *ReceiptService {
	return &ReceiptService{repo: repo}
}

// ListRecent returns the newest receipts
func (s *ReceiptService) ListRecent(ctx context.Context, limit int) ([]*domain.Receipt, error) {
	rows, err := s.repo.ListRecent(ctx, pagination.ReceiptBounds.Clamp(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	receipts := make([]*domain.Receipt, 0, len(rows))
	for _, r := range rows {
		receipts = append(receipts, r.ToDomain())
	}
	return receipts, nil
}

// GetByNumber returns a single receipt
func (s *ReceiptService) GetByNumber(ctx context.Context, number string) (*domain.Receipt, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: receipt number is required", domain.ErrInvalidInput)
	}

	row, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get receipt %s: %w", number, err)
	}
	return row.ToDomain(), nil
}
