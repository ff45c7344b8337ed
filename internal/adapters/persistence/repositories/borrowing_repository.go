package repositories

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// borrowingRepository implements BorrowingRepository interface
type borrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository creates a new borrowing repository
func NewBorrowingRepository(db *gorm.DB) BorrowingRepository {
	return &borrowingRepository{db: db}
}

// CreateBorrow takes one copy and records the borrowing as a single unit.
// The decrement is a conditional update, so two concurrent borrows of the
// last copy cannot both succeed: whoever loses the race sees zero rows
// affected and the transaction rolls back with domain.ErrBookUnavailable.
func (r *borrowingRepository) CreateBorrow(ctx context.Context, borrowing *models.Borrowing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Book{}).
			Where("id = ? AND available_copies > 0", borrowing.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBookUnavailable
		}
		return tx.Create(borrowing).Error
	})
}

// MarkReturned closes the borrowing and gives the copy back. The status
// flip is conditional so a borrowing can only be returned once, and the
// increment never pushes available_copies past total_copies.
func (r *borrowingRepository) MarkReturned(ctx context.Context, id uint, returnedAt time.Time) (*models.Borrowing, error) {
	var borrowing models.Borrowing
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&borrowing, id).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Borrowing{}).
			Where("id = ? AND status <> ?", id, models.StatusReturned).
			Updates(map[string]interface{}{
				"status":      models.StatusReturned,
				"return_date": returnedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyReturned
		}

		return tx.Model(&models.Book{}).
			Where("id = ? AND available_copies < total_copies", borrowing.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	borrowing.Status = models.StatusReturned
	borrowing.ReturnDate = &returnedAt
	return &borrowing, nil
}

// GetByID gets a borrowing by ID
func (r *borrowingRepository) GetByID(ctx context.Context, id uint) (*models.Borrowing, error) {
	var borrowing models.Borrowing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&borrowing).Error
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// ListDetails returns every borrowing joined with user and book names
func (r *borrowingRepository) ListDetails(ctx context.Context) ([]*models.BorrowingDetail, error) {
	var details []*models.BorrowingDetail
	err := r.db.WithContext(ctx).Table("borrowings").
		Select("borrowings.user_id, users.full_name AS user_name, borrowings.book_id, books.title, borrowings.borrow_date").
		Joins("JOIN users ON users.id = borrowings.user_id").
		Joins("JOIN books ON books.id = borrowings.book_id").
		Order("borrowings.borrow_date DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

// ListPaged lists borrowings with pagination for the admin ledger
func (r *borrowingRepository) ListPaged(ctx context.Context, offset, limit int) ([]*models.Borrowing, int64, error) {
	var borrowings []*models.Borrowing
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Borrowing{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("borrow_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&borrowings).Error
	if err != nil {
		return nil, 0, err
	}

	return borrowings, total, nil
}

// MarkOverdue flips every past-due active borrowing to Overdue
func (r *borrowingRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Borrowing{}).
		Where("status = ? AND due_date < ?", models.StatusBorrowed, now).
		UpdateColumn("status", models.StatusOverdue)
	return res.RowsAffected, res.Error
}
