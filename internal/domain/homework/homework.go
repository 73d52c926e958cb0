// internal/domain/homework/homework.go
package homework

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status is the review state of a submitted homework as reported by the Practicum API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdict returns the human-readable text for a status.
// The second value is false for statuses the bot does not know.
func (s Status) Verdict() (string, bool) {
	switch s {
	case StatusApproved:
		return "Работа проверена: ревьюеру всё понравилось. Ура!", true
	case StatusReviewing:
		return "Работа взята на проверку ревьюером.", true
	case StatusRejected:
		return "Работа проверена: у ревьюера есть замечания.", true
	default:
		return "", false
	}
}

// Homework holds the two fields of a "homeworks" element the bot reports on.
type Homework struct {
	Name   string
	Status Status
}

// Decode reads homework_name and status from one raw list element and ignores
// every other field. A name that is not a JSON string is kept as its JSON text;
// a status that is not a JSON string cannot be looked up.
func Decode(raw json.RawMessage) (Homework, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Homework{}, fmt.Errorf("%w: homework record is not a JSON object", ErrResponseShape)
	}

	rawName, ok := fields["homework_name"]
	if !ok {
		return Homework{}, fmt.Errorf("%w: homework_name", ErrMissingKey)
	}
	var name string
	if err := json.Unmarshal(rawName, &name); err != nil {
		name = string(bytes.TrimSpace(rawName))
	}

	rawStatus, ok := fields["status"]
	if !ok {
		return Homework{}, fmt.Errorf("%w: status", ErrMissingKey)
	}
	var status string
	if err := json.Unmarshal(rawStatus, &status); err != nil {
		return Homework{}, fmt.Errorf("%w: %s (homework %q)", ErrStatusLookup, bytes.TrimSpace(rawStatus), name)
	}

	return Homework{Name: name, Status: Status(status)}, nil
}

// ParseStatus builds the notification text for a single homework.
func ParseStatus(hw Homework) (string, error) {
	verdict, ok := hw.Status.Verdict()
	if !ok {
		return "", fmt.Errorf("%w: %q (homework %q)", ErrStatusLookup, hw.Status, hw.Name)
	}
	return fmt.Sprintf(`Changed review status for "%s". %s`, hw.Name, verdict), nil
}
