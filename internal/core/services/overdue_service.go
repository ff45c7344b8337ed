package services

import (
	"context"
	"log"
	"time"

	"libraryhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// OverdueService flips past-due borrowings to Overdue once a day and
// clears out expired refresh tokens while it is at it.
type OverdueService struct {
	borrowingRepo    repositories.BorrowingRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewOverdueService creates a new overdue service
func NewOverdueService(
	borrowingRepo repositories.BorrowingRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *OverdueService {
	return &OverdueService{
		borrowingRepo:    borrowingRepo,
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the daily sweep (08:30) and runs one immediately so a
// restart never leaves stale statuses until the next morning.
func (s *OverdueService) Start() {
	s.cron.AddFunc("30 8 * * *", s.Sweep)
	s.cron.Start()
	go s.Sweep()
	log.Println("🚀 OverdueService started (daily sweep at 08:30)")
}

// Stop stops the cron scheduler
func (s *OverdueService) Stop() {
	s.cron.Stop()
	log.Println("🛑 OverdueService stopped")
}

// Sweep marks every past-due active borrowing as Overdue
func (s *OverdueService) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	flipped, err := s.borrowingRepo.MarkOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Overdue sweep error: %v", err)
		return
	}
	if flipped > 0 {
		log.Printf("⏰ Marked %d borrowings as overdue", flipped)
	}

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Expired token cleanup error: %v", err)
	}
}
