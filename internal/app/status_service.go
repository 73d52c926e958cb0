// internal/app/status_service.go
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HomeworkAPI fetches raw homework statuses starting at fromDate (Unix seconds).
type HomeworkAPI interface {
	GetAPIAnswer(ctx context.Context, fromDate int64) (practicum.Response, error)
}

// Outcome is the result category of a single polling cycle.
type Outcome string

const (
	OutcomeNoUpdates Outcome = "no_updates"
	OutcomeNotified  Outcome = "notified"
	OutcomeFailed    Outcome = "failed"
)

// CycleResult describes what one polling cycle did. Err is set only for OutcomeFailed.
type CycleResult struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	FromDate  int64
	Outcome   Outcome
	Homeworks int
	Message   string
	Delivered bool
	Err       error
}

// StatusService polls the homework API and relays status changes to the configured chat.
type StatusService struct {
	cfg      *config.AppConfig
	api      HomeworkAPI
	notifier *Notifier
	logger   *logrus.Entry

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// Owned by the polling goroutine.
	cursor    int64
	lastAlert string

	mu    sync.RWMutex
	stats Stats
}

func NewStatusService(cfg *config.AppConfig, api HomeworkAPI, notifier *Notifier, logger *logrus.Entry) *StatusService {
	now := time.Now()
	return &StatusService{
		cfg:      cfg,
		api:      api,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		sleep:    sleepContext,
		cursor:   now.Unix(),
		stats:    Stats{StartedAt: now, Cursor: now.Unix()},
	}
}

// Run executes polling cycles until ctx is cancelled, pausing RetryTime after every cycle
// whatever its outcome. It always returns a non-nil error (the context's).
func (s *StatusService) Run(ctx context.Context) error {
	s.logger.WithFields(logrus.Fields{
		"retry_time":     s.cfg.RetryTime.String(),
		"from_date":      s.cursor,
		"advance_cursor": s.cfg.AdvanceCursor,
	}).Info("Homework status polling started")

	for {
		res := s.RunCycle(ctx)
		if ctx.Err() != nil {
			s.logger.Info("Homework status polling stopped")
			return ctx.Err()
		}
		s.handleResult(res)

		if err := s.sleep(ctx, s.cfg.RetryTime); err != nil {
			s.logger.Info("Homework status polling stopped")
			return err
		}
	}
}

// RunCycle performs one fetch → validate → format → send pass. It never panics and
// never returns an error directly: failures are reported in the result.
func (s *StatusService) RunCycle(ctx context.Context) (res CycleResult) {
	res = CycleResult{
		ID:        uuid.NewString(),
		StartedAt: s.now(),
		FromDate:  s.cursor,
	}
	logCtx := s.logger.WithField("cycle_id", res.ID)

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = OutcomeFailed
			res.Err = fmt.Errorf("panic during polling cycle: %v", r)
		}
		res.Duration = s.now().Sub(res.StartedAt)
		s.record(res)
		logCtx.WithFields(logrus.Fields{
			"outcome":   res.Outcome,
			"homeworks": res.Homeworks,
			"duration":  res.Duration.String(),
		}).Debug("Polling cycle finished")
	}()

	fail := func(err error) CycleResult {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	if !s.cfg.CheckTokens() {
		missing := strings.Join(s.cfg.MissingTokens(), ", ")
		logger.Critical(logCtx, "Missing required environment variables: "+missing)
		return fail(fmt.Errorf("%w: %s", homework.ErrConfigMissing, missing))
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout())
	defer cancel()

	answer, err := s.api.GetAPIAnswer(reqCtx, s.cursor)
	if err != nil {
		return fail(err)
	}

	homeworks, err := practicum.CheckResponse(answer)
	if err != nil {
		logCtx.WithError(err).Error("Homework API answer does not match the expected format")
		return fail(err)
	}
	logCtx.WithField("homeworks", len(homeworks)).Info("Homework API answer has the expected format")
	res.Homeworks = len(homeworks)

	if s.cfg.AdvanceCursor {
		if ts, ok := practicum.CurrentDate(answer); ok {
			s.cursor = ts
		}
	}

	if len(homeworks) == 0 {
		logCtx.Debug("No homework status changes")
		res.Outcome = OutcomeNoUpdates
		return res
	}

	// The API lists the most recently updated homework first.
	hw, err := homework.Decode(homeworks[0])
	if err != nil {
		logCtx.WithError(err).Error("Unexpected homework record")
		return fail(err)
	}
	message, err := homework.ParseStatus(hw)
	if err != nil {
		logCtx.WithError(err).Error("Unexpected homework record")
		return fail(err)
	}

	res.Message = message
	res.Delivered = s.notifier.Notify(message)
	res.Outcome = OutcomeNotified
	return res
}

// handleResult applies the failure alert policy: every failure is logged as critical, and
// the chat is told about it unless the very same failure text was already delivered since
// the last successful cycle.
func (s *StatusService) handleResult(res CycleResult) {
	if res.Outcome != OutcomeFailed {
		s.lastAlert = ""
		return
	}

	logCtx := s.logger.WithField("cycle_id", res.ID)
	message := fmt.Sprintf("Bot failure: %v", res.Err)
	logger.Critical(logCtx, message)

	if message == s.lastAlert {
		logCtx.Info("Failure already reported to the chat, alert suppressed")
		return
	}
	if s.notifier.Notify(message) {
		s.lastAlert = message
	}
}

func (s *StatusService) requestTimeout() time.Duration {
	if s.cfg.RequestTimeout <= 0 {
		return config.DefaultRequestTimeout
	}
	return s.cfg.RequestTimeout
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
