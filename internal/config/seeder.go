package config

import (
	"log"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedCatalog(); err != nil {
		log.Printf("⚠️ Catalog seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account.
// For development only; in production create the admin through a secure
// process and set ADMIN_PASSWORD.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash(getEnv("ADMIN_PASSWORD", "admin123456"))
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName: "Library Admin",
		Email:    getEnv("ADMIN_EMAIL", "admin@library.local"),
		Password: hashedPassword,
		Role:     models.RoleAdmin,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedCatalog seeds a starter catalog when the books table is empty
func (s *Seeder) seedCatalog() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil
	}

	books := []models.Book{
		{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", TotalCopies: 3, AvailableCopies: 3},
		{Title: "Clean Code", Author: "Robert C. Martin", TotalCopies: 2, AvailableCopies: 2},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", TotalCopies: 2, AvailableCopies: 2},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", TotalCopies: 1, AvailableCopies: 1},
	}

	if err := s.db.Create(&books).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d starter books", len(books))
	return nil
}
