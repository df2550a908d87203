package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	streamBuffer      = 32
	heartbeatInterval = 30 * time.Second
)

// OrderHandler handles diamond order endpoints
type OrderHandler struct {
	orderService *services.OrderService
	watchService *services.OrderWatchService
	hub          *services.EventHub
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService, watchService *services.OrderWatchService, hub *services.EventHub) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		watchService: watchService,
		hub:          hub,
	}
}

// ListPending returns orders awaiting fulfilment
// @Summary List pending orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /orders/pending [get]
func (h *OrderHandler) ListPending(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	orders, err := h.orderService.ListPending(requestCtx(c), sess)
	if err != nil {
		return respondError(c, err, "Failed to get pending orders")
	}

	return response.Success(c, "Pending orders retrieved successfully", orders)
}

// ListRejected returns refunded orders
// @Summary List rejected orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /orders/rejected [get]
func (h *OrderHandler) ListRejected(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	orders, err := h.orderService.ListRejected(requestCtx(c), sess)
	if err != nil {
		return respondError(c, err, "Failed to get rejected orders")
	}

	return response.Success(c, "Rejected orders retrieved successfully", orders)
}

// UpdateStatus completes or rejects an order
// @Summary Complete or reject order
// @Description Rejection refunds the user's points and requires confirm=true
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param body body StatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 428 {object} response.Response
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid order ID")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	sess, _ := middleware.CurrentSession(c)
	err = h.orderService.UpdateStatus(requestCtx(c), sess, &services.UpdateOrderStatusInput{
		OrderID: id,
		Status:  domain.OrderStatus(status),
		Confirm: req.Confirm,
	})
	if err != nil {
		return respondError(c, err, "Failed to update order status")
	}

	return response.Success(c, "Order status updated successfully", fiber.Map{
		"id":     id,
		"status": status,
	})
}

// Stream pushes pending order updates and refresh signals
// @Summary Order event stream
// @Description Server-sent events: connected, orders_update, refresh, session_expired
// @Tags Orders
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream"
// @Failure 401 {object} response.Response
// @Router /orders/stream [get]
func (h *OrderHandler) Stream(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	clientID := uuid.NewString()
	client := &services.EventClient{
		ID:      clientID,
		AdminID: sess.AdminID,
		Channel: make(chan domain.Event, streamBuffer),
	}
	h.hub.Register(client)

	// Connected goes first so the page knows the stream is live
	client.Channel <- domain.Event{Event: domain.EventConnected, Data: fiber.Map{"clientId": clientID}}

	task, err := h.watchService.Watch(sess, clientID)
	if err != nil {
		h.hub.Unregister(clientID)
		return respondError(c, err, "Failed to start order stream")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set(fiber.HeaderTransferEncoding, "chunked")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer h.hub.Unregister(clientID)
		defer task.Cancel()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case event, ok := <-client.Channel:
				if !ok {
					return
				}
				if err := writeEvent(w, event); err != nil {
					logger.Log.Debug().Str("client_id", clientID).Msg("Order stream client disconnected")
					return
				}
				if event.Event == domain.EventSessionExpired {
					return
				}

			case <-heartbeat.C:
				fmt.Fprintf(w, ": heartbeat\n\n")
				if err := w.Flush(); err != nil {
					logger.Log.Debug().Str("client_id", clientID).Msg("Order stream client disconnected")
					return
				}
			}
		}
	})

	return nil
}

// writeEvent writes one SSE frame and flushes it
func writeEvent(w *bufio.Writer, event domain.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		logger.Log.Error().Err(err).Str("event", event.Event).Msg("Failed to encode stream event")
		data = []byte("null")
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
	return w.Flush()
}
