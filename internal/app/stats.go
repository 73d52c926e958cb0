package app

import (
	"fmt"
	"strings"
	"time"
)

// Stats summarizes polling activity since start-up.
type Stats struct {
	StartedAt     time.Time
	Cycles        int
	Notifications int
	Failures      int
	LastCycleAt   time.Time
	LastOutcome   Outcome
	LastError     string
	Cursor        int64
}

// Stats returns a snapshot safe to read from other goroutines.
func (s *StatusService) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *StatusService) record(res CycleResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Cycles++
	s.stats.LastCycleAt = res.StartedAt
	s.stats.LastOutcome = res.Outcome
	s.stats.Cursor = s.cursor
	switch res.Outcome {
	case OutcomeFailed:
		s.stats.Failures++
		s.stats.LastError = res.Err.Error()
	case OutcomeNotified:
		if res.Delivered {
			s.stats.Notifications++
		}
	}
}

const statsTimeLayout = "2006-01-02 15:04:05"

// FormatStats renders a snapshot for the /status command and the heartbeat.
func FormatStats(st Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Polling since %s\n", st.StartedAt.Format(statsTimeLayout))
	fmt.Fprintf(&b, "Cycles: %d, notifications: %d, failures: %d\n", st.Cycles, st.Notifications, st.Failures)
	if st.Cycles == 0 {
		b.WriteString("No polling cycle has run yet.")
		return b.String()
	}
	fmt.Fprintf(&b, "Last cycle: %s (%s)\n", st.LastCycleAt.Format(statsTimeLayout), st.LastOutcome)
	fmt.Fprintf(&b, "Checking changes since %s", time.Unix(st.Cursor, 0).Format(statsTimeLayout))
	if st.LastError != "" {
		fmt.Fprintf(&b, "\nLast error: %s", st.LastError)
	}
	return b.String()
}
