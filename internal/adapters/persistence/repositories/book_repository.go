package repositories

import (
	"context"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetByID gets a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByTitle gets a book by case-insensitive exact title match
func (r *bookRepository) GetByTitle(ctx context.Context, title string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("LOWER(title) = LOWER(?)", title).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List lists all books
func (r *bookRepository) List(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book
	if err := r.db.WithContext(ctx).Order("id").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// copyTotals scans the aggregate sums for the stats endpoint
type copyTotals struct {
	Total     int64
	Available int64
}

// CopyTotals returns the summed total and available copy counts
func (r *bookRepository) CopyTotals(ctx context.Context) (int64, int64, error) {
	var totals copyTotals
	err := r.db.WithContext(ctx).Model(&models.Book{}).
		Select("COALESCE(SUM(total_copies), 0) AS total, COALESCE(SUM(available_copies), 0) AS available").
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Total, totals.Available, nil
}
