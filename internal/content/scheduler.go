package content

import (
	"log/slog"
	"time"

	"github.com/example/jeeprep/internal/storage"
	"github.com/go-co-op/gocron"
)

// Scheduler re-runs the content sync on a fixed interval so a git-hosted
// deck repo stays current without manual triggers.
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *storage.DB
	reposDir  string
}

// NewScheduler creates a scheduler; Start must be called to begin.
func NewScheduler(db *storage.DB, reposDir string) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
		reposDir:  reposDir,
	}
}

// Start begins periodic syncing at the given interval, non-blocking.
func (s *Scheduler) Start(interval time.Duration) error {
	_, err := s.scheduler.Every(interval).Do(func() {
		if err := Run(s.db, s.reposDir); err != nil {
			slog.Error("scheduled content sync failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates the periodic sync.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
