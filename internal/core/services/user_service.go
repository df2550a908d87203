package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/models"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/repositories"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPointsDescription is sent when the admin leaves the description empty
const DefaultPointsDescription = "Points added by admin"

// UserService handles registrations and point balances
type UserService struct {
	api        UserAPI
	receipts   repositories.ReceiptRepository
	audit      *AuditService
	notifier   Notifier
	classifier *search.Classifier
	uploadsURL string
}

// NewUserService creates a new user service
func NewUserService(
	api UserAPI,
	receipts repositories.ReceiptRepository,
	audit *AuditService,
	notifier Notifier,
	classifier *search.Classifier,
	uploadsURL string,
) *UserService {
	return &UserService{
		api:        api,
		receipts:   receipts,
		audit:      audit,
		notifier:   notifier,
		classifier: classifier,
		uploadsURL: uploadsURL,
	}
}

// UpdateUserStatusInput represents an approve/reject request
type UpdateUserStatusInput struct {
	UserID  int64
	Status  domain.UserStatus
	Confirm bool
}

// AddPointsInput represents an add-points request. Amount is the raw text
// the admin typed.
type AddPointsInput struct {
	UserID      int64
	Amount      string
	Description string
}

// ListPending returns registrations awaiting review
func (s *UserService) ListPending(ctx context.Context, sess *domain.Session) ([]domain.User, error) {
	users, err := s.api.PendingUsers(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}
	s.resolvePhotos(users)
	return users, nil
}

// ListApproved returns approved users, narrowed by term when given
func (s *UserService) ListApproved(ctx context.Context, sess *domain.Session, term string) ([]domain.User, error) {
	users, err := s.api.ApprovedUsers(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved users: %w", err)
	}
	s.resolvePhotos(users)

	filter := s.classifier.Classify(term)
	if filter.IsEmpty() {
		return users, nil
	}

	matched := make([]domain.User, 0, len(users))
	for _, u := range users {
		if filter.Matches(userTarget(&u)) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// UpdateStatus approves or rejects a registration. Rejection is only sent
// when confirmed.
func (s *UserService) UpdateStatus(ctx context.Context, sess *domain.Session, input *UpdateUserStatusInput) error {
	var action string
	switch input.Status {
	case domain.UserStatusApproved:
		action = ActionUserApprove
	case domain.UserStatusRejected:
		if !input.Confirm {
			return domain.ErrConfirmationRequired
		}
		action = ActionUserReject
	default:
		return domain.ErrInvalidStatus
	}

	err := s.api.UpdateUserStatus(ctx, sess.Token, input.UserID, input.Status)
	s.audit.Record(ctx, sess, AuditEntry{
		Action:     action,
		TargetType: "user",
		TargetID:   input.UserID,
		Err:        err,
	})
	if err != nil {
		return fmt.Errorf("failed to update user %d status: %w", input.UserID, err)
	}

	s.notifier.Broadcast(domain.NewRefreshEvent(domain.ResourceUsers, action, input.UserID))
	return nil
}

// ParseAmount validates a points amount before anything is sent
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return amount, nil
}

// AddPoints credits a user and returns the new balance with a receipt
func (s *UserService) AddPoints(ctx context.Context, sess *domain.Session, input *AddPointsInput) (*domain.PointsResult, error) {
	// 1. Validate locally, nothing is sent for a bad amount
	amount, err := ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = DefaultPointsDescription
	}

	// 2. Remote API applies the credit
	result, err := s.api.AddPoints(ctx, sess.Token, input.UserID, amount, description)
	s.audit.Record(ctx, sess, AuditEntry{
		Action:     ActionPointsAdd,
		TargetType: "user",
		TargetID:   input.UserID,
		Detail:     fmt.Sprintf("amount=%s description=%s", amount.String(), description),
		Err:        err,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add points to user %d: %w", input.UserID, err)
	}

	// 3. Receipt, issued locally when the API sends none
	if result.Receipt == nil {
		result.Receipt = s.issueReceipt(ctx, sess, input.UserID, result, amount, description)
	} else {
		fillReceipt(result.Receipt, sess, input.UserID, result.Balance, amount, description)
	}

	if err := s.receipts.Create(context.WithoutCancel(ctx), models.NewReceipt(result.Receipt)); err != nil {
		logger.Log.Error().Err(err).Str("receipt_number", result.Receipt.ReceiptNumber).Msg("Failed to store receipt")
	}

	s.notifier.Broadcast(domain.NewRefreshEvent(domain.ResourceUsers, ActionPointsAdd, input.UserID))
	return result, nil
}

func (s *UserService) issueReceipt(ctx context.Context, sess *domain.Session, userID int64, result *domain.PointsResult, amount decimal.Decimal, description string) *domain.Receipt {
	receipt := &domain.Receipt{
		ReceiptNumber: "RCPT-" + strings.ToUpper(uuid.NewString()),
	}

	receiver := result.User
	if receiver == nil {
		receiver = s.lookupApproved(ctx, sess, userID)
	}
	if receiver != nil {
		receipt.ReceiverName = receiver.DisplayName()
		receipt.ReceiverIDNumber = receiver.IDNumber
	}

	fillReceipt(receipt, sess, userID, result.Balance, amount, description)
	return receipt
}

// lookupApproved finds the receiver for a locally issued receipt. Failure only
// leaves the receiver name blank.
func (s *UserService) lookupApproved(ctx context.Context, sess *domain.Session, userID int64) *domain.User {
	users, err := s.api.ApprovedUsers(ctx, sess.Token)
	if err != nil {
		logger.Log.Warn().Err(err).Int64("user_id", userID).Msg("Receipt receiver lookup failed")
		return nil
	}
	for i := range users {
		if users[i].ID == userID {
			return &users[i]
		}
	}
	return nil
}

func fillReceipt(r *domain.Receipt, sess *domain.Session, userID int64, balance, amount decimal.Decimal, description string) {
	if r.UserID == 0 {
		r.UserID = userID
	}
	if r.Amount.IsZero() {
		r.Amount = amount
	}
	if r.NewBalance.IsZero() {
		r.NewBalance = balance
	}
	if r.Description == "" {
		r.Description = description
	}
	if r.AdminID == 0 {
		r.AdminID = sess.AdminID
	}
	if r.AdminName == "" {
		r.AdminName = sess.AdminName
	}
	if r.IssuedAt.IsZero() {
		r.IssuedAt = time.Now()
	}
	if r.ReceiptNumber == "" {
		r.ReceiptNumber = "RCPT-" + strings.ToUpper(uuid.NewString())
	}
}

func (s *UserService) resolvePhotos(users []domain.User) {
	for i := range users {
		users[i].ResolvePhoto(s.uploadsURL)
	}
}

func userTarget(u *domain.User) search.Target {
	return search.Target{
		UserID:   u.ID,
		IDNumber: u.IDNumber,
		Email:    u.Email,
		Name:     u.Name,
		Nickname: u.Nickname,
	}
}
