package handlers

import (
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/pagination"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReceiptHandler handles receipt and audit log endpoints
type ReceiptHandler struct {
	receiptService *services.ReceiptService
	auditService   *services.AuditService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *services.ReceiptService, auditService *services.AuditService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		auditService:   auditService,
	}
}

// ListReceipts returns the newest receipts
// @Summary List receipts
// @Tags Receipts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Rows (default 50, max 200)"
// @Success 200 {object} response.Response
// @Router /receipts [get]
func (h *ReceiptHandler) ListReceipts(c *fiber.Ctx) error {
	receipts, err := h.receiptService.ListRecent(requestCtx(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err, "Failed to get receipts")
	}

	return response.Success(c, "Receipts retrieved successfully", receipts)
}

// GetReceipt returns one receipt
// @Summary Get receipt
// @Tags Receipts
// @Produce json
// @Security BearerAuth
// @Param number path string true "Receipt number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /receipts/{number} [get]
func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	receipt, err := h.receiptService.GetByNumber(requestCtx(c), c.Params("number"))
	if err != nil {
		return respondError(c, err, "Failed to get receipt")
	}

	return response.Success(c, "Receipt retrieved successfully", receipt)
}

// ListAudit returns a page of audit rows
// @Summary List audit log
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Rows per page"
// @Success 200 {object} response.Response
// @Router /audit [get]
func (h *ReceiptHandler) ListAudit(c *fiber.Ctx) error {
	params := pagination.FromQuery(c, pagination.AuditBounds)

	entries, total, err := h.auditService.List(requestCtx(c), params)
	if err != nil {
		return respondError(c, err, "Failed to get audit log")
	}

	return response.Success(c, "Audit log retrieved successfully", pagination.NewPage(entries, params, total))
}
