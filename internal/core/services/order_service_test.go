package services

import (
	"context"
	"testing"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     UpdateOrderStatusInput
		wantErr   error
		wantCalls int
		action    string
	}{
		{
			name:      "complete",
			input:     UpdateOrderStatusInput{OrderID: 5, Status: domain.OrderStatusCompleted},
			wantCalls: 1,
			action:    ActionOrderComplete,
		},
		{
			name:    "reject needs confirmation",
			input:   UpdateOrderStatusInput{OrderID: 5, Status: domain.OrderStatusRejected},
			wantErr: domain.ErrConfirmationRequired,
		},
		{
			name:      "confirmed reject",
			input:     UpdateOrderStatusInput{OrderID: 5, Status: domain.OrderStatusRejected, Confirm: true},
			wantCalls: 1,
			action:    ActionOrderReject,
		},
		{
			name:    "pending is not a target status",
			input:   UpdateOrderStatusInput{OrderID: 5, Status: domain.OrderStatusPending},
			wantErr: domain.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := mocks.NewAPI()
			auditRepo := &mocks.AuditRepository{}
			notifier := &mocks.Notifier{}
			svc := NewOrderService(fake, NewAuditService(auditRepo, 0), notifier, "")

			input := tt.input
			err := svc.UpdateStatus(context.Background(), testSession(), &input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, fake.Calls())
				assert.Empty(t, notifier.Events())
				return
			}

			require.NoError(t, err)
			calls := fake.Calls()
			require.Len(t, calls, tt.wantCalls)
			assert.Equal(t, string(tt.input.Status), calls[0].Status)

			entries := auditRepo.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.action, entries[0].Action)
			assert.Equal(t, "order", entries[0].TargetType)

			events := notifier.Events()
			require.Len(t, events, 1)
			data, ok := events[0].Data.(domain.RefreshData)
			require.True(t, ok)
			assert.Equal(t, domain.ResourceOrders, data.Resource)
			assert.Equal(t, int64(5), data.ID)
		})
	}
}

func TestOrderService_Lists(t *testing.T) {
	t.Parallel()

	fake := mocks.NewAPI()
	fake.PendingOrd = []domain.Order{{ID: 1, Quantity: 100, User: &domain.User{ID: 3, FacePhoto: "/faces/3.png"}}}
	fake.RejectedOrd = []domain.Order{{ID: 2, Status: domain.OrderStatusRejected}}
	svc := NewOrderService(fake, nil, &mocks.Notifier{}, "http://api.local/uploads/")

	pending, err := svc.ListPending(context.Background(), testSession())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "http://api.local/uploads/faces/3.png", pending[0].User.FacePhoto)

	rejected, err := svc.ListRejected(context.Background(), testSession())
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, domain.OrderStatusRejected, rejected[0].Status)
}
