package services

import (
	"context"
	"log"
	"time"

	"istore-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the nightly maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	voucherRepo      repositories.VoucherRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
		voucherRepo:      repositories.NewVoucherRepository(db),
	}
}

// Start registers the maintenance jobs and begins scheduling
func (s *CronService) Start() {
	s.cron.AddFunc("30 2 * * *", s.runMaintenance)
	s.cron.Start()
	log.Println("⏰ Maintenance scheduler started (daily at 02:30)")
}

// Stop stops the scheduler. Jobs already running finish on their own.
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("⏰ Maintenance scheduler stopped")
}

// runMaintenance purges expired refresh tokens and deactivates
// depleted vouchers
func (s *CronService) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Failed to purge refresh tokens: %v", err)
	} else if deleted > 0 {
		log.Printf("🧹 Purged %d expired refresh tokens", deleted)
	}

	deactivated, err := s.voucherRepo.DeactivateDepleted(ctx)
	if err != nil {
		log.Printf("❌ Failed to deactivate depleted vouchers: %v", err)
	} else if deactivated > 0 {
		log.Printf("🧹 Deactivated %d depleted vouchers", deactivated)
	}
}
