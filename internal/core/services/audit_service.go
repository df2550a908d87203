package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/api"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/models"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/repositories"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/pagination"
)

// Audit actions
const (
	ActionUserApprove        = "user.approve"
	ActionUserReject         = "user.reject"
	ActionPointsAdd          = "points.add"
	ActionOrderComplete      = "order.complete"
	ActionOrderReject        = "order.reject"
	ActionAnnouncementCreate = "announcement.create"
	ActionAnnouncementUpdate = "announcement.update"
	ActionAnnouncementToggle = "announcement.toggle"
	ActionAnnouncementDelete = "announcement.delete"
)

type requestIDKey struct{}

// WithRequestID attaches the HTTP request id to ctx for audit rows
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id attached to ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// AuditEntry describes one mutation sent to the remote API
type AuditEntry struct {
	Action     string
	TargetType string
	TargetID   int64
	Detail     string
	Err        error
}

// AuditService keeps the local record of dashboard mutations
type AuditService struct {
	repo      repositories.AuditRepository
	retention time.Duration
}

// NewAuditService creates a new audit service. retentionDays below 1 keeps rows forever.
func NewAuditService(repo repositories.AuditRepository, retentionDays int) *AuditService {
	return &AuditService{
		repo:      repo,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Record stores an audit row. A failed write is logged, never returned:
// the mutation it describes already happened.
func (s *AuditService) Record(ctx context.Context, sess *domain.Session, e AuditEntry) {
	if s == nil {
		return
	}

	entry := &models.AuditLog{
		RequestID:  RequestID(ctx),
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   fmt.Sprintf("%d", e.TargetID),
		Detail:     truncate(e.Detail, 255),
		Success:    e.Err == nil,
	}
	if sess != nil {
		entry.AdminID = sess.AdminID
		entry.AdminName = sess.AdminName
	}
	if e.Err != nil {
		msg := api.Message(e.Err)
		if msg == "" {
			msg = e.Err.Error()
		}
		entry.Error = truncate(msg, 500)
	}

	// The request may already be cancelled; the row should still land
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.repo.Create(writeCtx, entry); err != nil {
		logger.Log.Error().Err(err).Str("action", e.Action).Int64("target_id", e.TargetID).Msg("Failed to write audit log")
	}
}

// List returns a page of audit rows, newest first
func (s *AuditService) List(ctx context.Context, params *pagination.Params) ([]*models.AuditLog, int64, error) {
	entries, total, err := s.repo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	if entries == nil {
		entries = []*models.AuditLog{}
	}
	return entries, total, nil
}

// Cleanup deletes rows past the retention window
func (s *AuditService) Cleanup(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}

	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit logs before %s: %w", cutoff.Format(time.DateOnly), err)
	}

	logger.Log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Audit log cleanup completed")
	return deleted, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
