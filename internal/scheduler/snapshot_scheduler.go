package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/calculator"
	"github.com/AinaRoxane/Wallet/internal/config"
	"github.com/AinaRoxane/Wallet/internal/models"
	"github.com/AinaRoxane/Wallet/internal/repositories"
)

// SnapshotScheduler records every user's portfolio valuation on a cron
// schedule so the history chart has daily points even for idle accounts.
type SnapshotScheduler struct {
	cfg       config.SnapshotConfig
	users     repositories.UserRepository
	feeds     repositories.PriceFeedRepository
	snapshots repositories.SnapshotRepository

	cron *cron.Cron
}

func NewSnapshotScheduler(
	cfg config.SnapshotConfig,
	users repositories.UserRepository,
	feeds repositories.PriceFeedRepository,
	snapshots repositories.SnapshotRepository,
) *SnapshotScheduler {
	return &SnapshotScheduler{
		cfg:       cfg,
		users:     users,
		feeds:     feeds,
		snapshots: snapshots,
		cron:      cron.New(cron.WithLocation(time.UTC)),
	}
}

// Start registers the job and launches the cron loop.
func (s *SnapshotScheduler) Start() error {
	if !s.cfg.Enabled {
		logrus.Info("Valuation snapshots disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runOnce); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", s.cfg.Schedule, err)
	}

	s.cron.Start()
	logrus.WithField("schedule", s.cfg.Schedule).Info("Valuation snapshot job scheduled")
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *SnapshotScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *SnapshotScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.SnapshotAll(ctx); err != nil {
		logrus.WithError(err).Error("Valuation snapshot run failed")
	}
}

// SnapshotAll values every account against the current feeds and stores
// one snapshot per user. A failure on one user does not stop the rest.
func (s *SnapshotScheduler) SnapshotAll(ctx context.Context) error {
	feeds, err := s.feeds.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load price feeds: %w", err)
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	takenAt := time.Now().UTC()
	failures := 0

	for i := range users {
		user := &users[i]
		valuation := calculator.ComputeValuation(user.Balance, feeds)

		snapshot := &models.ValuationSnapshot{
			UserID:   user.ID.Hex(),
			Email:    user.Email,
			Total:    valuation.Total,
			Holdings: valuation.Holdings,
			TakenAt:  takenAt,
		}

		if err := s.snapshots.Create(ctx, snapshot); err != nil {
			logrus.WithField("user_id", snapshot.UserID).WithError(err).Error("Failed to store snapshot")
			failures++
		}
	}

	logrus.WithFields(logrus.Fields{
		"users":    len(users),
		"failures": failures,
	}).Info("Valuation snapshot run completed")

	if failures > 0 {
		return fmt.Errorf("%d of %d snapshots failed", failures, len(users))
	}
	return nil
}
