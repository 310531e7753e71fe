package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/drivehub/rental-backend/internal/config"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron       *cron.Cron
	cfg        config.CronConfig
	bookingSvc *BookingService
	logger     *logrus.Logger
}

// NewCronService creates a new CronService
func NewCronService(cfg config.CronConfig, bookingSvc *BookingService, logger *logrus.Logger) *CronService {
	return &CronService{
		// Seconds precision so the sweep spec matches the six-field format
		cron:       cron.New(cron.WithSeconds()),
		cfg:        cfg,
		bookingSvc: bookingSvc,
		logger:     logger,
	}
}

// Start registers and starts all scheduled jobs
func (s *CronService) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("Cron disabled, background sweeps will not run")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.BookingSweepSpec, s.bookingSweepJob)
	if err != nil {
		return fmt.Errorf("failed to schedule booking sweep: %w", err)
	}
	s.logger.WithField("spec", s.cfg.BookingSweepSpec).Info("Scheduled booking lifecycle sweep")

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// RunBookingSweepNow runs the booking sweep immediately
func (s *CronService) RunBookingSweepNow() {
	s.bookingSweepJob()
}

func (s *CronService) bookingSweepJob() {
	started := time.Now()
	if err := s.bookingSvc.SweepLifecycle(time.Now()); err != nil {
		s.logger.WithError(err).Error("Booking lifecycle sweep failed")
		return
	}
	s.logger.WithField("duration", time.Since(started)).Info("Booking lifecycle sweep done")
}
