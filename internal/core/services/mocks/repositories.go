package mocks

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AuditRepository is an in-memory audit log
type AuditRepository struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	Err     error
}

func (r *AuditRepository) Create(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	entry.ID = uint(len(r.entries) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *AuditRepository) List(_ context.Context, offset, limit int) ([]*models.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	sorted := append([]*models.AuditLog{}, r.entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	total := int64(len(sorted))
	if offset >= len(sorted) {
		return []*models.AuditLog{}, total, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], total, nil
}

func (r *AuditRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}

	kept := r.entries[:0]
	var deleted int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return deleted, nil
}

// Entries returns the stored rows in insertion order
func (r *AuditRepository) Entries() []*models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.AuditLog{}, r.entries...)
}

// ReceiptRepository is an in-memory receipt store
type ReceiptRepository struct {
	mu       sync.Mutex
	receipts []*models.Receipt
	Err      error
}

func (r *ReceiptRepository) Create(_ context.Context, receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.receipts {
		if existing.ReceiptNumber == receipt.ReceiptNumber {
			return errors.New("duplicate receipt number")
		}
	}
	receipt.ID = uint(len(r.receipts) + 1)
	r.receipts = append(r.receipts, receipt)
	return nil
}

func (r *ReceiptRepository) ListRecent(_ context.Context, limit int) ([]*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	sorted := append([]*models.Receipt{}, r.receipts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].IssuedAt.After(sorted[j].IssuedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *ReceiptRepository) GetByNumber(_ context.Context, number string) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, existing := range r.receipts {
		if existing.ReceiptNumber == number {
			return existing, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
