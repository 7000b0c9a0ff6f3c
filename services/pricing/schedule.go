package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"roomservice/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrInvalidSchedule is returned when a schedule cannot be decoded at all.
	ErrInvalidSchedule = errors.New("invalid price schedule")
	// ErrIncompleteSchedule is returned when only one bound is set.
	ErrIncompleteSchedule = errors.New("price schedule needs both activeFrom and activeTo")
	// ErrInvalidTimeOfDay is returned when a bound is not a 24h HH:MM value.
	ErrInvalidTimeOfDay = errors.New("price schedule times must be HH:MM (24h)")
)

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Schedule is a normalized price schedule. A Schedule with Present unset
// means "no schedule"; a present one always has both bounds.
type Schedule struct {
	Value   models.PriceSchedule
	Present bool
}

// Absent is the "no schedule" value.
var Absent = Schedule{}

// Complete reports whether both bounds are set.
func (s Schedule) Complete() bool {
	return s.Present && s.Value.ActiveFrom != "" && s.Value.ActiveTo != ""
}

// Normalize turns whatever is stored or submitted for a price schedule into a
// Schedule. It never fails: undecodable input, an empty value and a
// one-sided window all come back as Absent. The input is not modified.
func Normalize(raw any) Schedule {
	from, to, err := fields(raw)
	if err != nil {
		return Absent
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return Absent
	}
	return Schedule{Value: models.PriceSchedule{ActiveFrom: from, ActiveTo: to}, Present: true}
}

// Validate is the strict check used when a schedule is written. Both bounds
// empty is a valid "no schedule"; otherwise both must be HH:MM.
func Validate(raw any) (models.PriceSchedule, error) {
	from, to, err := fields(raw)
	if err != nil {
		return models.PriceSchedule{}, err
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	switch {
	case from == "" && to == "":
		return models.PriceSchedule{}, nil
	case from == "" || to == "":
		return models.PriceSchedule{}, ErrIncompleteSchedule
	case !timeOfDayPattern.MatchString(from) || !timeOfDayPattern.MatchString(to):
		return models.PriceSchedule{}, ErrInvalidTimeOfDay
	}
	return models.PriceSchedule{ActiveFrom: from, ActiveTo: to}, nil
}

// Canonical returns the shape stored back on the item and echoed in
// listings: the window, or two empty strings.
func Canonical(s Schedule) models.PriceSchedule {
	if !s.Complete() {
		return models.PriceSchedule{}
	}
	return s.Value
}

// fields extracts activeFrom/activeTo from every shape a schedule is known to
// arrive in. A value that panics while being read is reported as
// ErrInvalidSchedule.
func fields(raw any) (from, to string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			from, to, err = "", "", fmt.Errorf("%w: %v", ErrInvalidSchedule, rec)
		}
	}()

	switch v := raw.(type) {
	case nil:
		return "", "", nil
	case Schedule:
		return v.Value.ActiveFrom, v.Value.ActiveTo, nil
	case *Schedule:
		if v == nil {
			return "", "", nil
		}
		return v.Value.ActiveFrom, v.Value.ActiveTo, nil
	case models.PriceSchedule:
		return v.ActiveFrom, v.ActiveTo, nil
	case *models.PriceSchedule:
		if v == nil {
			return "", "", nil
		}
		return v.ActiveFrom, v.ActiveTo, nil
	case string:
		return fromJSON([]byte(v))
	case []byte:
		return fromJSON(v)
	case json.RawMessage:
		return fromJSON(v)
	case map[string]any:
		return fromMap(v)
	case bson.M:
		return fromMap(v)
	case bson.D:
		m := make(map[string]any, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}
		return fromMap(m)
	default:
		// Any other struct is read through its JSON form.
		data, err := json.Marshal(v)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		return fromJSON(data)
	}
}

func fromJSON(data []byte) (string, string, error) {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		return "", "", nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	return fromMap(m)
}

func fromMap(m map[string]any) (string, string, error) {
	return field(m, "activeFrom"), field(m, "activeTo"), nil
}

func field(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
