package scheduler

import (
	"fmt"
	"time"

	"homework_status_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StatsProvider exposes polling statistics.
type StatsProvider interface {
	Stats() app.Stats
}

// Notifier delivers a message to the configured chat.
type Notifier interface {
	Notify(text string) bool
}

// HeartbeatScheduler periodically posts polling statistics to the chat,
// so a silent bot can be told apart from a dead one.
type HeartbeatScheduler struct {
	cronEngine *cron.Cron
	stats      StatsProvider
	notifier   Notifier
	logger     *logrus.Entry
	cronSpec   string
}

func NewHeartbeatScheduler(
	stats StatsProvider,
	notifier Notifier,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 9 * * *" (9 AM daily)
) *HeartbeatScheduler {
	return &HeartbeatScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		stats:    stats,
		notifier: notifier,
		logger:   logger,
		cronSpec: cronSpec,
	}
}

func (s *HeartbeatScheduler) Start() error {
	s.logger.WithField("cron_spec", s.cronSpec).Info("Starting heartbeat scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for heartbeat.")
		s.sendHeartbeat()
	})
	if err != nil {
		return fmt.Errorf("could not add heartbeat cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.Info("Heartbeat scheduler started.")
	return nil
}

func (s *HeartbeatScheduler) sendHeartbeat() {
	text := "Heartbeat\n" + app.FormatStats(s.stats.Stats())
	if !s.notifier.Notify(text) {
		s.logger.Warn("Heartbeat was not delivered")
	}
}

func (s *HeartbeatScheduler) Stop() {
	s.logger.Info("Stopping heartbeat scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Heartbeat scheduler gracefully stopped.")
}
