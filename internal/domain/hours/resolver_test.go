package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const beirut = "Asia/Beirut"

func uniform(open, close string) WeeklySchedule {
	days := make(map[DayKey]Day, len(Week))
	for _, key := range Week {
		days[key] = OpenDay(open, close)
	}
	return WeeklySchedule{Timezone: beirut, Days: days}
}

func allClosed() WeeklySchedule {
	days := make(map[DayKey]Day, len(Week))
	for _, key := range Week {
		days[key] = ClosedDay()
	}
	return WeeklySchedule{Timezone: beirut, Days: days}
}

// beirutAt builds a wall-clock instant in Beirut. 2025-01-06 is a Monday.
func beirutAt(t *testing.T, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(beirut)
	require.NoError(t, err)
	return time.Date(2025, time.January, day, hour, minute, 0, 0, loc)
}

func TestResolveScenarios(t *testing.T) {
	cases := []struct {
		name     string
		schedule WeeklySchedule
		at       time.Time
		want     OpenState
	}{
		{
			name:     "monday afternoon is open",
			schedule: uniform("10:00", "20:00"),
			at:       beirutAt(t, 6, 14, 0),
			want:     OpenState{State: StateOpen, Label: "Open now"},
		},
		{
			name:     "after closing opens tomorrow",
			schedule: uniform("10:00", "20:00"),
			at:       beirutAt(t, 6, 21, 0),
			want:     OpenState{State: StateClosed, Label: "Opens tomorrow at 10:00"},
		},
		{
			name:     "whole week closed falls back",
			schedule: allClosed(),
			at:       beirutAt(t, 6, 14, 0),
			want:     OpenState{State: StateClosed, Label: "Closed (hours on request)"},
		},
		{
			name:     "before opening opens today",
			schedule: uniform("10:00", "20:00"),
			at:       beirutAt(t, 6, 8, 0),
			want:     OpenState{State: StateClosed, Label: "Opens at 10:00"},
		},
		{
			name:     "exactly at open is open",
			schedule: uniform("10:00", "20:00"),
			at:       beirutAt(t, 6, 10, 0),
			want:     OpenState{State: StateOpen, Label: "Open now"},
		},
		{
			name:     "exactly at close is closed",
			schedule: uniform("10:00", "20:00"),
			at:       beirutAt(t, 6, 20, 0),
			want:     OpenState{State: StateClosed, Label: "Opens tomorrow at 10:00"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Resolve(tc.schedule, tc.at))
		})
	}
}

func TestResolveConvertsInstantIntoScheduleZone(t *testing.T) {
	// 12:00 UTC is 14:00 in Beirut during winter.
	at := time.Date(2025, time.January, 6, 12, 0, 0, 0, time.UTC)
	require.True(t, Resolve(uniform("10:00", "20:00"), at).IsOpen())

	// 19:00 UTC is 21:00 in Beirut, after closing.
	late := time.Date(2025, time.January, 6, 19, 0, 0, 0, time.UTC)
	require.Equal(t, "Opens tomorrow at 10:00", Resolve(uniform("10:00", "20:00"), late).Label)
}

func TestResolveOvernightRange(t *testing.T) {
	schedule := uniform("22:00", "02:00")

	require.True(t, Resolve(schedule, beirutAt(t, 6, 23, 30)).IsOpen())
	require.True(t, Resolve(schedule, beirutAt(t, 7, 1, 0)).IsOpen())

	got := Resolve(schedule, beirutAt(t, 7, 10, 0))
	require.Equal(t, OpenState{State: StateClosed, Label: "Opens at 22:00"}, got)
}

func TestResolveEqualOpenAndCloseWrapsWholeDay(t *testing.T) {
	schedule := uniform("09:00", "09:00")
	for _, hour := range []int{0, 8, 9, 15, 23} {
		require.True(t, Resolve(schedule, beirutAt(t, 6, hour, 30)).IsOpen(), "hour %d", hour)
	}
}

func TestResolveNamesWeekdayBeyondTomorrow(t *testing.T) {
	schedule := allClosed()
	schedule.Days[Monday] = OpenDay("10:00", "20:00")
	schedule.Days[Thursday] = OpenDay("11:30", "20:00")

	got := Resolve(schedule, beirutAt(t, 6, 21, 0))
	require.Equal(t, OpenState{State: StateClosed, Label: "Opens Thu at 11:30"}, got)
}

func TestResolveFindsSameWeekdayNextWeek(t *testing.T) {
	schedule := allClosed()
	schedule.Days[Monday] = OpenDay("10:00", "20:00")

	got := Resolve(schedule, beirutAt(t, 6, 21, 0))
	require.Equal(t, OpenState{State: StateClosed, Label: "Opens Mon at 10:00"}, got)
}

func TestResolveInvalidTimezoneIsUnknown(t *testing.T) {
	for _, tz := range []string{"Mars/Olympus_Mons", "", "Local", "not a zone"} {
		schedule := uniform("10:00", "20:00")
		schedule.Timezone = tz
		got := Resolve(schedule, beirutAt(t, 6, 14, 0))
		require.Equal(t, OpenState{State: StateUnknown, Label: "Hours on request"}, got, "timezone %q", tz)
	}
}

func TestResolveMalformedTodayFallsThroughToNextDay(t *testing.T) {
	schedule := uniform("10:00", "20:00")
	schedule.Days[Monday] = OpenDay("25:00", "20:00")

	got := Resolve(schedule, beirutAt(t, 6, 14, 0))
	require.Equal(t, OpenState{State: StateClosed, Label: "Opens tomorrow at 10:00"}, got)
}

func TestResolveSkipsMalformedAndMissingFutureDays(t *testing.T) {
	schedule := allClosed()
	schedule.Days[Tuesday] = OpenDay("10:60", "20:00")
	delete(schedule.Days, Wednesday)
	schedule.Days[Thursday] = OpenDay(" 09:15 ", "20:00")

	got := Resolve(schedule, beirutAt(t, 6, 21, 0))
	require.Equal(t, OpenState{State: StateClosed, Label: "Opens Thu at 09:15"}, got)
}

func TestResolveStepsCalendarDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation(beirut)
	require.NoError(t, err)
	schedule := allClosed()
	schedule.Days[Sunday] = OpenDay("10:00", "20:00")

	// Saturday night before the spring-forward Sunday.
	at := time.Date(2025, time.March, 29, 23, 30, 0, 0, loc)
	require.Equal(t, "Opens tomorrow at 10:00", Resolve(schedule, at).Label)
}

func TestResolveIsIdempotent(t *testing.T) {
	schedule := uniform("10:00", "20:00")
	at := beirutAt(t, 6, 21, 0)
	require.Equal(t, Resolve(schedule, at), Resolve(schedule, at))
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{in: "00:00", want: 0, ok: true},
		{in: "23:59", want: 1439, ok: true},
		{in: " 10:30 ", want: 630, ok: true},
		{in: "24:00", ok: false},
		{in: "12:60", ok: false},
		{in: "9:00", ok: false},
		{in: "noon", ok: false},
	}
	for _, tc := range cases {
		got, ok := parseClock(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			require.Equal(t, tc.want, got, tc.in)
		}
	}
}
