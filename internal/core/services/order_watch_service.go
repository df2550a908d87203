package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/scheduler"
)

// OrderWatchService polls pending orders for each connected stream and
// pushes the list whenever it changes
type OrderWatchService struct {
	api       OrderAPI
	hub       *EventHub
	scheduler *scheduler.Scheduler
	interval  time.Duration
	timeout   time.Duration
}

// NewOrderWatchService creates a new order watch service. An interval of
// zero disables polling.
func NewOrderWatchService(api OrderAPI, hub *EventHub, sched *scheduler.Scheduler, interval, timeout time.Duration) *OrderWatchService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OrderWatchService{
		api:       api,
		hub:       hub,
		scheduler: sched,
		interval:  interval,
		timeout:   timeout,
	}
}

// orderWatch is the per-client poll state
type orderWatch struct {
	svc      *OrderWatchService
	sess     *domain.Session
	clientID string

	mu    sync.Mutex
	known map[int64]struct{}
	seen  bool
}

// Watch sends the current pending orders to clientID and schedules a poll for
// it. The returned task must be cancelled when the client disconnects; it is
// nil when polling is disabled.
func (s *OrderWatchService) Watch(sess *domain.Session, clientID string) (*scheduler.Task, error) {
	w := &orderWatch{svc: s, sess: sess, clientID: clientID}
	w.poll()

	if s.interval <= 0 {
		return nil, nil
	}

	task, err := s.scheduler.Every(s.interval, w.poll)
	if err != nil {
		return nil, err
	}

	logger.Log.Debug().Str("client_id", clientID).Dur("interval", s.interval).Msg("Order watch scheduled")
	return task, nil
}

func (w *orderWatch) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), w.svc.timeout)
	defer cancel()

	orders, err := w.svc.api.PendingOrders(ctx, w.sess.Token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			w.svc.hub.Send(w.clientID, domain.Event{Event: domain.EventSessionExpired})
			return
		}
		logger.Log.Warn().Err(err).Str("client_id", w.clientID).Msg("Pending orders poll failed")
		return
	}

	update, changed := w.diff(orders)
	if changed {
		w.svc.hub.Send(w.clientID, domain.Event{Event: domain.EventOrdersUpdate, Data: update})
	}
}

// diff records the current ids and reports the ones not seen on the previous
// poll. The first poll is a baseline with no new ids.
func (w *orderWatch) diff(orders []domain.Order) (domain.OrdersUpdate, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current := make(map[int64]struct{}, len(orders))
	newIDs := []int64{}
	for _, o := range orders {
		current[o.ID] = struct{}{}
		if _, ok := w.known[o.ID]; w.seen && !ok {
			newIDs = append(newIDs, o.ID)
		}
	}

	changed := !w.seen || len(newIDs) > 0 || len(current) != len(w.known)
	w.known = current
	w.seen = true

	return domain.OrdersUpdate{Orders: orders, NewOrderIDs: newIDs}, changed
}
