package handlers

import (
	"errors"
	"net/url"

	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog and borrowing endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// BorrowRequest represents borrow request body
type BorrowRequest struct {
	UserID uint `json:"userId"`
	BookID uint `json:"bookId"`
}

// ReturnRequest represents return request body
type ReturnRequest struct {
	BorrowingID uint `json:"borrowingId"`
}

// List handles GET /books
func (h *BookHandler) List(c *fiber.Ctx) error {
	books, err := h.bookService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load books")
	}
	return c.JSON(books)
}

// GetByTitle handles GET /books/:title
func (h *BookHandler) GetByTitle(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil || title == "" {
		return response.BadRequest(c, "Title is required")
	}

	book, err := h.bookService.FindByTitle(c.Context(), title)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "Book doesn't exist")
		}
		return response.InternalServerError(c, "Failed to load book")
	}

	return c.JSON(book)
}

// Borrow handles POST /books/borrow
func (h *BookHandler) Borrow(c *fiber.Ctx) error {
	var req BorrowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Legacy clients send userId in the body; everyone else is identified
	// by the access token.
	userID := req.UserID
	if userID == 0 {
		if id, ok := c.Locals("userID").(uint); ok {
			userID = id
		}
	}
	if userID == 0 || req.BookID == 0 {
		return response.BadRequest(c, "userId and bookId are required")
	}

	borrowing, err := h.bookService.Borrow(c.Context(), userID, req.BookID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookUnavailable):
			return response.BadRequest(c, "Book is not available for borrowing.")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.BadRequest(c, "User doesn't exist")
		default:
			return response.InternalServerError(c, "An error occurred while processing the borrowing request.")
		}
	}

	return c.JSON(fiber.Map{
		"message":     "Book borrowed successfully",
		"borrowingId": borrowing.ID,
	})
}

// Return handles POST /books/return
func (h *BookHandler) Return(c *fiber.Ctx) error {
	var req ReturnRequest
	if err := c.BodyParser(&req); err != nil || req.BorrowingID == 0 {
		return response.BadRequest(c, "borrowingId is required")
	}

	borrowing, err := h.bookService.Return(c.Context(), req.BorrowingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBorrowingNotFound):
			return response.NotFound(c, "Borrowing doesn't exist")
		case errors.Is(err, domain.ErrAlreadyReturned):
			return response.Conflict(c, "Book has already been returned.")
		default:
			return response.InternalServerError(c, "An error occurred while processing the return request.")
		}
	}

	return c.JSON(fiber.Map{
		"message":     "Book returned successfully",
		"borrowingId": borrowing.ID,
	})
}

// Add handles POST /books/add
func (h *BookHandler) Add(c *fiber.Ctx) error {
	var req services.AddBookInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Add(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title, author and a positive totalCopies are required")
		}
		return response.InternalServerError(c, "Failed to add book")
	}

	return c.JSON(fiber.Map{
		"message": "Book added successfully",
		"bookId":  book.ID,
	})
}

// Stats handles GET /books/stats
func (h *BookHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.bookService.GetStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load stats")
	}
	return c.JSON(stats)
}
