// Package homework validates Practicum API payloads and renders
// human-readable status messages.
package homework

import (
	"errors"
	"fmt"
)

// Recognized review statuses.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// Verdicts maps a review status to its human-readable verdict text.
var Verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

var (
	ErrNotMapping       = errors.New("response is not an object")
	ErrNoHomeworksKey   = errors.New(`response has no "homeworks" key`)
	ErrHomeworksNotList = errors.New(`"homeworks" is not a list`)
	ErrNoName           = errors.New(`homework has no "homework_name"`)
	ErrUnknownStatus    = errors.New("homework status is missing or unrecognized")
)

// CheckResponse verifies that a decoded API payload has the documented shape:
// a JSON object whose "homeworks" field is a list. It reports the first
// violation found and nothing about the list's elements.
func CheckResponse(v any) error {
	obj, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: got %T", ErrNotMapping, v)
	}
	raw, ok := obj["homeworks"]
	if !ok || raw == nil {
		return ErrNoHomeworksKey
	}
	if _, ok := raw.([]any); !ok {
		return fmt.Errorf("%w: got %T", ErrHomeworksNotList, raw)
	}
	return nil
}

// Homeworks extracts the homework list from a payload that has already
// passed CheckResponse.
func Homeworks(v any) []any {
	return v.(map[string]any)["homeworks"].([]any)
}

// CurrentDate extracts the response's "current_date" unix timestamp.
// The second result is false when the field is absent or not a number.
func CurrentDate(v any) (int64, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return 0, false
	}
	// encoding/json decodes JSON numbers into float64.
	f, ok := obj["current_date"].(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// ParseStatus renders the notification sentence for a single homework entry.
// The entry must carry a homework_name and one of the recognized statuses.
func ParseStatus(hw any) (string, error) {
	obj, ok := hw.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrNotMapping, hw)
	}
	name, ok := obj["homework_name"].(string)
	if !ok {
		return "", ErrNoName
	}
	status, _ := obj["status"].(string)
	verdict, ok := Verdicts[status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	return fmt.Sprintf("Изменился статус проверки работы %q. %s", name, verdict), nil
}
