package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles
const (
	RoleAdmin  = "Admin"
	RoleMember = "Member"
)

// Borrowing statuses
const (
	StatusBorrowed = "Borrowed"
	StatusReturned = "Returned"
	StatusOverdue  = "Overdue"
)

// BorrowPeriod is how long a copy may be kept out
const BorrowPeriod = 14 * 24 * time.Hour

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID         uint        `gorm:"primaryKey" json:"userId"`
	FullName   string      `gorm:"size:100;not null" json:"fullName"`
	Email      string      `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string      `gorm:"size:255;not null" json:"-"`
	Role       string      `gorm:"size:20;default:'Member'" json:"role"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
	Borrowings []Borrowing `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO (never carries the password hash)
type UserResponse struct {
	UserID   uint   `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		UserID:   u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// IsAdmin reports whether the user may hit management endpoints
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ============================================================
// Books
// ============================================================

// Book represents books table
type Book struct {
	ID              uint        `gorm:"primaryKey" json:"bookId"`
	Title           string      `gorm:"size:255;not null;index" json:"title"`
	Author          string      `gorm:"size:255;not null" json:"author"`
	AvailableCopies int         `gorm:"not null;default:0" json:"availableCopies"`
	TotalCopies     int         `gorm:"not null;default:0" json:"totalCopies"`
	CoverImageURL   string      `gorm:"size:500" json:"coverImageUrl,omitempty"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
	Borrowings      []Borrowing `gorm:"foreignKey:BookID" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// ============================================================
// Borrowings
// ============================================================

// Borrowing links a user and a book for one lending period
type Borrowing struct {
	ID         uint       `gorm:"primaryKey" json:"borrowingId"`
	UserID     uint       `gorm:"index;not null" json:"userId"`
	BookID     uint       `gorm:"index;not null" json:"bookId"`
	BorrowDate time.Time  `gorm:"not null" json:"borrowDate"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     string     `gorm:"size:20;default:'Borrowed';index" json:"status"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Book       Book       `gorm:"foreignKey:BookID" json:"-"`
}

func (Borrowing) TableName() string {
	return "borrowings"
}

// IsActive reports whether the copy is still out
func (b *Borrowing) IsActive() bool {
	return b.Status != StatusReturned
}

// BorrowingDetail is the joined user/book view for display
type BorrowingDetail struct {
	UserID     uint      `json:"userId"`
	UserName   string    `json:"userName"`
	BookID     uint      `json:"bookId"`
	Title      string    `json:"title"`
	BorrowDate time.Time `json:"borrowDate"`
}

// ============================================================
// Refresh tokens
// ============================================================

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `gorm:"index" json:"revokedAt"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Book{},
		&Borrowing{},
		&RefreshToken{},
	)
}
