package hours

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DayKey identifies a weekday inside a WeeklySchedule.
type DayKey string

const (
	Monday    DayKey = "mon"
	Tuesday   DayKey = "tue"
	Wednesday DayKey = "wed"
	Thursday  DayKey = "thu"
	Friday    DayKey = "fri"
	Saturday  DayKey = "sat"
	Sunday    DayKey = "sun"
)

// Week lists every day key, Monday first.
var Week = []DayKey{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayKeyByWeekday = map[time.Weekday]DayKey{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// KeyFor maps a time.Weekday onto its schedule key.
func KeyFor(w time.Weekday) DayKey {
	return dayKeyByWeekday[w]
}

const closedMarker = "closed"

// TimeRange is a wall-clock window in 24h HH:MM form. Close <= Open spans midnight.
type TimeRange struct {
	Open  string `json:"open" yaml:"open"`
	Close string `json:"close" yaml:"close"`
}

// Day is either closed or open for Range. Entries that cannot be read
// decode as closed and keep the reason for Validate.
type Day struct {
	Closed  bool
	Range   TimeRange
	problem string
}

// ClosedDay returns the closed marker.
func ClosedDay() Day {
	return Day{Closed: true}
}

// OpenDay returns a day open between open and close.
func OpenDay(open, close string) Day {
	return Day{Range: TimeRange{Open: open, Close: close}}
}

func malformedDay(format string, args ...any) Day {
	return Day{Closed: true, problem: fmt.Sprintf(format, args...)}
}

// MarshalJSON encodes closed days as the "closed" string.
func (d Day) MarshalJSON() ([]byte, error) {
	if d.Closed {
		return json.Marshal(closedMarker)
	}
	return json.Marshal(d.Range)
}

// UnmarshalJSON accepts "closed" or an {open, close} object. Anything else
// that is valid JSON becomes a malformed closed day.
func (d *Day) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = dayFromValue(raw)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (d Day) MarshalYAML() (any, error) {
	if d.Closed {
		return closedMarker, nil
	}
	return d.Range, nil
}

// UnmarshalYAML accepts a "closed" scalar or an open/close mapping.
func (d *Day) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		*d = malformedDay("line %d: %v", node.Line, err)
		return nil
	}
	*d = dayFromValue(raw)
	return nil
}

func dayFromValue(raw any) Day {
	switch v := raw.(type) {
	case string:
		if strings.EqualFold(strings.TrimSpace(v), closedMarker) {
			return ClosedDay()
		}
		return malformedDay("unknown day marker %q", v)
	case map[string]any:
		open, okOpen := v["open"].(string)
		closeAt, okClose := v["close"].(string)
		if !okOpen || !okClose {
			return malformedDay("open and close must be HH:MM strings, got open=%v close=%v", v["open"], v["close"])
		}
		return OpenDay(open, closeAt)
	default:
		return malformedDay("day must be %q or an open/close mapping, got %v", closedMarker, raw)
	}
}

// WeeklySchedule is the recurring opening-hours configuration of one branch.
type WeeklySchedule struct {
	Timezone string         `json:"timezone" yaml:"timezone"`
	Days     map[DayKey]Day `json:"days" yaml:"days"`
	Notes    string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate reports every problem that would make a day unresolvable.
// The resolver tolerates all of them; this is for startup diagnostics.
func Validate(s WeeklySchedule) error {
	var errs []error
	if _, ok := loadLocation(s.Timezone); !ok {
		errs = append(errs, fmt.Errorf("invalid timezone %q", s.Timezone))
	}
	for _, key := range Week {
		day, ok := s.Days[key]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: missing", key))
			continue
		}
		if day.problem != "" {
			errs = append(errs, fmt.Errorf("%s: %s", key, day.problem))
			continue
		}
		if day.Closed {
			continue
		}
		if _, ok := parseClock(day.Range.Open); !ok {
			errs = append(errs, fmt.Errorf("%s: invalid open time %q", key, day.Range.Open))
		}
		if _, ok := parseClock(day.Range.Close); !ok {
			errs = append(errs, fmt.Errorf("%s: invalid close time %q", key, day.Range.Close))
		}
	}
	return errors.Join(errs...)
}
