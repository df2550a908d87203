package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
)

// AnnouncementService handles site announcements
type AnnouncementService struct {
	api      AnnouncementAPI
	audit    *AuditService
	notifier Notifier
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(api AnnouncementAPI, audit *AuditService, notifier Notifier) *AnnouncementService {
	return &AnnouncementService{
		api:      api,
		audit:    audit,
		notifier: notifier,
	}
}

// AnnouncementInput represents create/update fields. A nil IsActive means
// active on create and unchanged on update.
type AnnouncementInput struct {
	Title    string
	Message  string
	Type     domain.AnnouncementType
	IsActive *bool
}

func (in *AnnouncementInput) normalize() (*domain.Announcement, error) {
	a := &domain.Announcement{
		Title:   strings.TrimSpace(in.Title),
		Message: strings.TrimSpace(in.Message),
		Type:    domain.AnnouncementType(strings.ToLower(strings.TrimSpace(string(in.Type)))),
	}
	if a.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if a.Message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if a.Type == "" {
		a.Type = domain.AnnouncementInfo
	}
	if !a.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be one of info, warning, success, promotion", domain.ErrInvalidInput)
	}
	return a, nil
}

// List returns every announcement
func (s *AnnouncementService) List(ctx context.Context, sess *domain.Session) ([]domain.Announcement, error) {
	list, err := s.api.Announcements(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return list, nil
}

// Create validates and creates an announcement
func (s *AnnouncementService) Create(ctx context.Context, sess *domain.Session, input *AnnouncementInput) (*domain.Announcement, error) {
	a, err := input.normalize()
	if err != nil {
		return nil, err
	}
	a.IsActive = input.IsActive == nil || *input.IsActive

	created, err := s.api.CreateAnnouncement(ctx, sess.Token, a)
	s.audit.Record(ctx, sess, AuditEntry{
		Action:     ActionAnnouncementCreate,
		TargetType: "announcement",
		Detail:     a.Title,
		Err:        err,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.notifier.Broadcast(domain.NewRefreshEvent(domain.ResourceAnnouncements, ActionAnnouncementCreate, created.ID))
	return created, nil
}

// Update validates and replaces an announcement
func (s *AnnouncementService) Update(ctx context.Context, sess *domain.Session, id int64, input *AnnouncementInput) (*domain.Announcement, error) {
	a, err := input.normalize()
	if err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		a.IsActive = *input.IsActive
	} else {
		current, err := s.find(ctx, sess, id)
		if err != nil {
			return nil, err
		}
		a.IsActive = current.IsActive
	}

	return s.put(ctx, sess, id, a, ActionAnnouncementUpdate)
}

// Toggle flips the active flag of an announcement
func (s *AnnouncementService) Toggle(ctx context.Context, sess *domain.Session, id int64) (*domain.Announcement, error) {
	current, err := s.find(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	next := *current
	next.IsActive = !current.IsActive
	return s.put(ctx, sess, id, &next, ActionAnnouncementToggle)
}

// Delete removes an announcement once confirmed
func (s *AnnouncementService) Delete(ctx context.Context, sess *domain.Session, id int64, confirm bool) error {
	if !confirm {
		return domain.ErrConfirmationRequired
	}

	err := s.api.DeleteAnnouncement(ctx, sess.Token, id)
	s.audit.Record(ctx, sess, AuditEntry{
		Action:     ActionAnnouncementDelete,
		TargetType: "announcement",
		TargetID:   id,
		Err:        err,
	})
	if err != nil {
		return fmt.Errorf("failed to delete announcement %d: %w", id, err)
	}

	s.notifier.Broadcast(domain.NewRefreshEvent(domain.ResourceAnnouncements, ActionAnnouncementDelete, id))
	return nil
}

func (s *AnnouncementService) put(ctx context.Context, sess *domain.Session, id int64, a *domain.Announcement, action string) (*domain.Announcement, error) {
	updated, err := s.api.UpdateAnnouncement(ctx, sess.Token, id, a)
	s.audit.Record(ctx, sess, AuditEntry{
		Action:     action,
		TargetType: "announcement",
		TargetID:   id,
		Detail:     fmt.Sprintf("active=%t", a.IsActive),
		Err:        err,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update announcement %d: %w", id, err)
	}

	s.notifier.Broadcast(domain.NewRefreshEvent(domain.ResourceAnnouncements, action, id))
	return updated, nil
}

// find reads the current record; the API has no single-announcement endpoint
func (s *AnnouncementService) find(ctx context.Context, sess *domain.Session, id int64) (*domain.Announcement, error) {
	list, err := s.api.Announcements(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
