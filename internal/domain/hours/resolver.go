package hours

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

// State tags the variant of an OpenState.
type State string

const (
	StateOpen    State = "open"
	StateClosed  State = "closed"
	StateUnknown State = "unknown"
)

const (
	labelOpen           = "Open now"
	labelHoursOnRequest = "Hours on request"
	labelNoOpening      = "Closed (hours on request)"

	lookaheadDays = 7
	minutesPerDay = 24 * 60
)

// OpenState is the result of Resolve. Closed and Unknown carry a display label.
type OpenState struct {
	State State  `json:"state"`
	Label string `json:"label"`
}

// IsOpen reports whether the branch is open.
func (s OpenState) IsOpen() bool {
	return s.State == StateOpen
}

// Resolve reports whether schedule is open at the instant at and, if not,
// when it next opens within the lookahead window. It never fails: an
// unusable timezone yields StateUnknown and unparseable days count as closed.
func Resolve(schedule WeeklySchedule, at time.Time) OpenState {
	loc, ok := loadLocation(schedule.Timezone)
	if !ok {
		return OpenState{State: StateUnknown, Label: labelHoursOnRequest}
	}

	local := at.In(loc)
	now := local.Hour()*60 + local.Minute()

	today, hasToday := schedule.window(local.Weekday())
	if hasToday && today.contains(now) {
		return OpenState{State: StateOpen, Label: labelOpen}
	}
	if hasToday && now < today.open {
		return closed("Opens at " + formatMinutes(today.open))
	}

	for offset := 1; offset <= lookaheadDays; offset++ {
		// Noon keeps the calendar step clear of DST gaps at midnight.
		day := time.Date(local.Year(), local.Month(), local.Day()+offset, 12, 0, 0, 0, loc)
		next, ok := schedule.window(day.Weekday())
		if !ok {
			continue
		}
		if offset == 1 {
			return closed("Opens tomorrow at " + formatMinutes(next.open))
		}
		return closed(fmt.Sprintf("Opens %s at %s", shortWeekday(day.Weekday()), formatMinutes(next.open)))
	}

	return closed(labelNoOpening)
}

func closed(label string) OpenState {
	return OpenState{State: StateClosed, Label: label}
}

// window is a parsed TimeRange in minutes since local midnight.
type window struct {
	open  int
	close int
}

func (s WeeklySchedule) window(w time.Weekday) (window, bool) {
	day, ok := s.Days[KeyFor(w)]
	if !ok || day.Closed {
		return window{}, false
	}
	open, ok := parseClock(day.Range.Open)
	if !ok {
		return window{}, false
	}
	closeAt, ok := parseClock(day.Range.Close)
	if !ok {
		return window{}, false
	}
	return window{open: open, close: closeAt}, true
}

// contains treats the window as half-open [open, close). A close at or
// before open wraps past midnight, so open == close covers the whole day.
func (w window) contains(now int) bool {
	if w.close <= w.open {
		adjusted := now
		if now < w.open {
			adjusted += minutesPerDay
		}
		return adjusted >= w.open && adjusted < w.close+minutesPerDay
	}
	return now >= w.open && now < w.close
}

var clockPattern = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

func parseClock(value string) (int, bool) {
	match := clockPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0, false
	}
	hour, err := strconv.Atoi(match[1])
	if err != nil || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func shortWeekday(w time.Weekday) string {
	return w.String()[:3]
}

var locations sync.Map // string -> *time.Location (nil when invalid)

func loadLocation(name string) (*time.Location, bool) {
	name = strings.TrimSpace(name)
	// LoadLocation maps "" to UTC and "Local" to the host zone; neither is an IANA id.
	if name == "" || name == "Local" {
		return nil, false
	}
	if cached, ok := locations.Load(name); ok {
		loc, _ := cached.(*time.Location)
		return loc, loc != nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		locations.Store(name, (*time.Location)(nil))
		return nil, false
	}
	locations.Store(name, loc)
	return loc, true
}
