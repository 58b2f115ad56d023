package hours

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Status is the display form of an OpenState used by branch cards.
type Status struct {
	State    State  `json:"state"`
	Label    string `json:"label"`
	Headline string `json:"headline"`
	Detail   string `json:"detail"`
}

// Describe resolves the schedule at the instant and renders the pill text.
func Describe(schedule WeeklySchedule, at time.Time) Status {
	result := Resolve(schedule, at)
	status := Status{State: result.State, Label: result.Label}

	switch result.State {
	case StateOpen:
		status.Headline = "Open Now"
	case StateClosed:
		status.Headline = "Closed"
	default:
		status.Headline = "Hours"
	}

	if today, ok := TodayRange(schedule, at); ok && result.IsOpen() && today.Close != "" {
		status.Detail = "Closes at " + Format12h(today.Close)
	} else {
		status.Detail = To12hLabel(result.Label)
	}
	return status
}

// TodayRange returns the range configured for the local day of at.
func TodayRange(schedule WeeklySchedule, at time.Time) (TimeRange, bool) {
	loc, ok := loadLocation(schedule.Timezone)
	if !ok {
		return TimeRange{}, false
	}
	day, ok := schedule.Days[KeyFor(at.In(loc).Weekday())]
	if !ok || day.Closed {
		return TimeRange{}, false
	}
	return day.Range, true
}

// Format12h renders "22:30" as "10:30 PM" and "10:00" as "10 AM".
// Values that are not valid HH:MM come back unchanged.
func Format12h(value string) string {
	minutes, ok := parseClock(value)
	if !ok {
		return value
	}
	hour24, minute := minutes/60, minutes%60
	period := "AM"
	if hour24 >= 12 {
		period = "PM"
	}
	hour12 := hour24 % 12
	if hour12 == 0 {
		hour12 = 12
	}
	if minute == 0 {
		return fmt.Sprintf("%d %s", hour12, period)
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, period)
}

var labelClock = regexp.MustCompile(`\b\d{2}:\d{2}\b`)

// To12hLabel rewrites every HH:MM inside label in 12h form.
func To12hLabel(label string) string {
	return labelClock.ReplaceAllStringFunc(label, Format12h)
}

// Summary is the free-text hours line shown under a branch.
func Summary(schedule WeeklySchedule) string {
	if notes := strings.TrimSpace(schedule.Notes); notes != "" {
		return notes
	}
	return "Hours available on request."
}
