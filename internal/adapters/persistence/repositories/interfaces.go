package repositories

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// BookRepository defines book repository interface
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	GetByTitle(ctx context.Context, title string) (*models.Book, error)
	List(ctx context.Context) ([]*models.Book, error)
	CopyTotals(ctx context.Context) (total int64, available int64, err error)
}

// BorrowingRepository defines borrowing repository interface
type BorrowingRepository interface {
	// CreateBorrow decrements the book's available copies and inserts the
	// borrowing in a single transaction. Returns domain.ErrBookUnavailable
	// when the book is missing or has no copies left.
	CreateBorrow(ctx context.Context, borrowing *models.Borrowing) error
	// MarkReturned sets return date and status and gives the copy back,
	// in a single transaction.
	MarkReturned(ctx context.Context, id uint, returnedAt time.Time) (*models.Borrowing, error)
	GetByID(ctx context.Context, id uint) (*models.Borrowing, error)
	ListDetails(ctx context.Context) ([]*models.BorrowingDetail, error)
	ListPaged(ctx context.Context, offset, limit int) ([]*models.Borrowing, int64, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
