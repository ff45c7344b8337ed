package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// BookService handles catalog and borrowing business logic
type BookService struct {
	bookRepo      repositories.BookRepository
	borrowingRepo repositories.BorrowingRepository
	userRepo      repositories.UserRepository
}

// NewBookService creates a new book service
func NewBookService(
	bookRepo repositories.BookRepository,
	borrowingRepo repositories.BorrowingRepository,
	userRepo repositories.UserRepository,
) *BookService {
	return &BookService{
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
		userRepo:      userRepo,
	}
}

// AddBookInput represents add-book input
type AddBookInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	TotalCopies   int    `json:"totalCopies"`
	CoverImageURL string `json:"coverImageUrl"`
}

// Stats represents the dashboard aggregate totals
type Stats struct {
	TotalBooks  int64 `json:"totalBooks"`
	Available   int64 `json:"available"`
	Borrowed    int64 `json:"borrowed"`
	ActiveUsers int64 `json:"activeUsers"`
}

// List returns every book in the catalog
func (s *BookService) List(ctx context.Context) ([]*models.Book, error) {
	return s.bookRepo.List(ctx)
}

// FindByTitle returns the book whose title matches case-insensitively
func (s *BookService) FindByTitle(ctx context.Context, title string) (*models.Book, error) {
	book, err := s.bookRepo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// Add creates a new book with all copies available
func (s *BookService) Add(ctx context.Context, input *AddBookInput) (*models.Book, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Author) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.TotalCopies < 1 {
		return nil, domain.ErrInvalidInput
	}

	book := &models.Book{
		Title:           strings.TrimSpace(input.Title),
		Author:          strings.TrimSpace(input.Author),
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
		CoverImageURL:   strings.TrimSpace(input.CoverImageURL),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	log.Printf("✅ Book added: %q by %s (%d copies)", book.Title, book.Author, book.TotalCopies)
	return book, nil
}

// Borrow takes one copy of a book for a user. The decrement of the
// available-copy count and the insert of the borrowing record commit or
// roll back together.
func (s *BookService) Borrow(ctx context.Context, userID, bookID uint) (*models.Borrowing, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	borrowing := &models.Borrowing{
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: now,
		DueDate:    now.Add(models.BorrowPeriod),
		Status:     models.StatusBorrowed,
	}

	if err := s.borrowingRepo.CreateBorrow(ctx, borrowing); err != nil {
		if errors.Is(err, domain.ErrBookUnavailable) {
			return nil, domain.ErrBookUnavailable
		}
		log.Printf("❌ Borrow failed for user %d, book %d: %v", userID, bookID, err)
		return nil, err
	}

	log.Printf("✅ Book %d borrowed by user %d (borrowing %d, due %s)",
		bookID, userID, borrowing.ID, borrowing.DueDate.Format("2006-01-02"))
	return borrowing, nil
}

// Return closes a borrowing and puts the copy back on the shelf
func (s *BookService) Return(ctx context.Context, borrowingID uint) (*models.Borrowing, error) {
	borrowing, err := s.borrowingRepo.MarkReturned(ctx, borrowingID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, domain.ErrBorrowingNotFound
		case errors.Is(err, domain.ErrAlreadyReturned):
			return nil, domain.ErrAlreadyReturned
		default:
			log.Printf("❌ Return failed for borrowing %d: %v", borrowingID, err)
			return nil, err
		}
	}

	log.Printf("✅ Borrowing %d returned (book %d)", borrowing.ID, borrowing.BookID)
	return borrowing, nil
}

// GetStats returns the dashboard aggregate totals
func (s *BookService) GetStats(ctx context.Context) (*Stats, error) {
	total, available, err := s.bookRepo.CopyTotals(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalBooks:  total,
		Available:   available,
		Borrowed:    total - available,
		ActiveUsers: users,
	}, nil
}
