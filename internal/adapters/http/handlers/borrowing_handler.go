package handlers

import (
	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BorrowingHandler exposes the paginated admin ledger of borrowing records
type BorrowingHandler struct {
	borrowingRepo repositories.BorrowingRepository
}

// NewBorrowingHandler creates a new borrowing handler
func NewBorrowingHandler(borrowingRepo repositories.BorrowingRepository) *BorrowingHandler {
	return &BorrowingHandler{borrowingRepo: borrowingRepo}
}

// ListLedger handles GET /borrowings
func (h *BorrowingHandler) ListLedger(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	borrowings, total, err := h.borrowingRepo.ListPaged(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load borrowing ledger")
	}

	if borrowings == nil {
		borrowings = []*models.Borrowing{}
	}

	return c.JSON(pagination.NewResponse(borrowings, params, total))
}
