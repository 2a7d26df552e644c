package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pickupsports/game-chat-api/databases"
)

const retentionJobName = "chat-retention-cleanup"
const retentionLockTTL = 30 * time.Minute

// Scheduler handles periodic background jobs for the chat subsystem
type Scheduler struct {
	cron       *cron.Cron
	Messages   databases.ChatMessageDatabase
	LockDB     databases.SchedulerLockDatabase
	Retention  time.Duration
	instanceID string
}

// NewScheduler creates a new scheduler instance. retentionDays <= 0
// disables the cleanup job.
func NewScheduler(
	messages databases.ChatMessageDatabase,
	lockDB databases.SchedulerLockDatabase,
	retentionDays int,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Messages:   messages,
		LockDB:     lockDB,
		Retention:  time.Duration(retentionDays) * 24 * time.Hour,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	if s.Retention <= 0 {
		zap.S().Info("chat retention cleanup disabled")
		return
	}

	// Daily at 03:15 UTC, off the traffic peak.
	_, err := s.cron.AddFunc("15 3 * * *", s.runRetentionCleanup)
	if err != nil {
		zap.S().With(err).Error("failed to register retention cleanup job")
		return
	}
	s.cron.Start()
	zap.S().Infow("scheduler started",
		"instance", s.instanceID,
		"retention", s.Retention,
	)
}

// Stop halts the cron loop; running jobs finish
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// runRetentionCleanup deletes chat messages older than the retention
// window. The mongo lock makes sure only one instance prunes per run.
func (s *Scheduler) runRetentionCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	acquired, err := s.LockDB.Acquire(ctx, retentionJobName, s.instanceID, retentionLockTTL)
	if err != nil {
		zap.S().With(err).Error("failed to acquire retention lock")
		return
	}
	if !acquired {
		zap.S().Debugw("retention lock held elsewhere, skipping",
			"instance", s.instanceID,
		)
		return
	}
	defer func() {
		if err := s.LockDB.Release(ctx, retentionJobName, s.instanceID); err != nil {
			zap.S().With(err).Warn("failed to release retention lock")
		}
	}()

	cutoff := time.Now().UTC().Add(-s.Retention)
	deleted, err := s.Messages.DeleteBefore(ctx, cutoff)
	if err != nil {
		zap.S().With(err).Error("retention cleanup failed")
		return
	}
	zap.S().Infow("retention cleanup finished",
		"cutoff", cutoff,
		"deleted", deleted,
	)
}
