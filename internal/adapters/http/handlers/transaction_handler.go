package handlers

import (
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles transaction history endpoints
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// List returns the newest transactions with reward increments
// @Summary List transactions
// @Description search is classified as user id, ID number or email; explicit parameters take precedence
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param userId query string false "User ID"
// @Param idNumber query string false "ID number"
// @Param email query string false "Email"
// @Param limit query int false "Rows (default 100, max 500)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	result, err := h.transactionService.List(requestCtx(c), sess, &services.TransactionQuery{
		Search:   c.Query("search"),
		UserID:   c.Query("userId"),
		IDNumber: c.Query("idNumber"),
		Email:    c.Query("email"),
		Limit:    c.QueryInt("limit", 0),
	})
	if err != nil {
		return respondError(c, err, "Failed to get transactions")
	}

	return response.Success(c, "Transactions retrieved successfully", result)
}
