package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/funzone-site/internal/domain/hours"
	apperrors "github.com/yanqian/funzone-site/pkg/errors"
	"github.com/yanqian/funzone-site/pkg/util"
)

type stubRepo struct {
	branches      []Branch
	activities    []Activity
	neighborhoods []Neighborhood
	programs      []Program
	birthdays     BirthdayCatalog
	err           error
}

func (r stubRepo) Branches(context.Context) ([]Branch, error)     { return r.branches, r.err }
func (r stubRepo) Activities(context.Context) ([]Activity, error) { return r.activities, r.err }
func (r stubRepo) Neighborhoods(context.Context) ([]Neighborhood, error) {
	return r.neighborhoods, r.err
}

func (r stubRepo) Programs(context.Context) ([]Program, error) { return r.programs, r.err }
func (r stubRepo) Birthdays(context.Context) (BirthdayCatalog, error) {
	return r.birthdays, r.err
}

func weekly(open, close string) hours.WeeklySchedule {
	days := map[hours.DayKey]hours.Day{}
	for _, key := range hours.Week {
		days[key] = hours.OpenDay(open, close)
	}
	return hours.WeeklySchedule{Timezone: "Asia/Beirut", Days: days}
}

func intPtr(v int) *int { return &v }

func fixture() stubRepo {
	return stubRepo{
		branches: []Branch{
			{
				ID: "loc-monteverde", Slug: "monteverde", Name: "Fun Zone Monteverde", City: "Monteverde",
				Type: BranchTypePlayground, Hours: weekly("10:00", "20:00"),
				Activities: []string{"trampoline", "soft-play"}, Tags: []string{"toddlers"},
			},
			{
				ID: "loc-antelias", Slug: "antelias", Name: "Fun Zone Antelias", City: "Antelias",
				Type: BranchTypePlayground, Hours: weekly("10:00", "22:00"),
				Activities: []string{"ninja", "soft-play"},
			},
			{
				ID: "loc-dbayeh", Slug: "sports-zone", Name: "Fun Zone Sports", City: "Dbayeh",
				Type: BranchTypeSports, Hours: weekly("08:00", "23:00"),
				Activities: []string{"padel"},
			},
		},
		activities: []Activity{
			{ID: "soft-play", Name: "Soft Play", Category: "play", AgeRange: AgeRange{Min: 1, Max: intPtr(5)}, EnergyLevel: EnergyLow, AvailableAt: []string{"monteverde", "antelias"}},
			{ID: "trampoline", Name: "Trampoline Park", Category: "jump", AgeRange: AgeRange{Min: 4}, EnergyLevel: EnergyHigh, AvailableAt: []string{"monteverde"}},
			{ID: "ninja", Name: "Ninja Course", Category: "climb", AgeRange: AgeRange{Min: 6, Max: intPtr(14)}, EnergyLevel: EnergyHigh, AvailableAt: []string{"antelias"}},
			{ID: "padel", Name: "Padel Courts", Category: "sports", AgeRange: AgeRange{Min: 12}, EnergyLevel: EnergyMedium, AvailableAt: []string{"sports-zone"}},
		},
		neighborhoods: []Neighborhood{
			{ID: "near-beirut", Title: "Near Beirut", Cities: []string{"Antelias", "Dbayeh"}},
			{ID: "sports-training", Title: "Sports training", Type: BranchTypeSports},
		},
	}
}

func newTestService(repo Repository, now time.Time) *service {
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = util.FixedClock(now)
	return svc
}

func beirut(t *testing.T, value string) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Beirut")
	require.NoError(t, err)
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	require.NoError(t, err)
	return ts
}

func slugs(items []Listing) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Slug)
	}
	return out
}

func TestGetBranchResolvesReferences(t *testing.T) {
	svc := newTestService(fixture(), time.Now())
	cases := map[string]string{
		"monteverde":            "monteverde",
		"  Monteverde ":         "monteverde",
		"loc-antelias":          "antelias",
		"dbayeh":                "sports-zone",
		"fun-zone-sports":       "sports-zone",
		"sports":                "sports-zone",
		"antelias-branch":       "antelias",
		"Fun%20Zone%20Antelias": "antelias",
	}
	for ref, want := range cases {
		got, err := svc.GetBranch(context.Background(), ref)
		require.NoError(t, err, ref)
		require.Equal(t, want, got.Slug, ref)
	}
}

func TestGetBranchUnknown(t *testing.T) {
	svc := newTestService(fixture(), time.Now())
	_, err := svc.GetBranch(context.Background(), "tripoli")
	require.True(t, apperrors.IsCode(err, "not_found"))

	_, err = svc.GetBranch(context.Background(), "   ")
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestGetBranchDecoratesStatus(t *testing.T) {
	svc := newTestService(fixture(), beirut(t, "2025-01-06 21:00"))
	got, err := svc.GetBranch(context.Background(), "antelias")
	require.NoError(t, err)
	require.Equal(t, hours.StateOpen, got.Status.State)
	require.Equal(t, "Closes at 10 PM", got.Status.Detail)
	require.Equal(t, "Kids Playground", got.TypeLabel)
	require.Equal(t, "Hours available on request.", got.HoursSummary)
}

func TestBranchStatus(t *testing.T) {
	now := beirut(t, "2025-01-06 21:00")
	svc := newTestService(fixture(), now)

	got, err := svc.BranchStatus(context.Background(), "Monteverde", time.Time{})
	require.NoError(t, err)
	require.Equal(t, "monteverde", got.Branch)
	require.True(t, got.At.Equal(now))
	require.Equal(t, hours.StateClosed, got.Status.State)
	require.Equal(t, "Opens tomorrow at 10:00", got.Status.Label)
	require.Equal(t, "Opens tomorrow at 10 AM", got.Status.Detail)

	morning := beirut(t, "2025-01-07 11:00")
	got, err = svc.BranchStatus(context.Background(), "monteverde", morning)
	require.NoError(t, err)
	require.Equal(t, hours.StateOpen, got.Status.State)

	_, err = svc.BranchStatus(context.Background(), "nowhere", now)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestListBranchesFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(fixture(), beirut(t, "2025-01-06 21:00"))

	got, err := svc.ListBranches(ctx, BranchFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"monteverde", "antelias", "sports-zone"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{Type: BranchTypeSports})
	require.NoError(t, err)
	require.Equal(t, []string{"sports-zone"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{City: "Antelias"})
	require.NoError(t, err)
	require.Equal(t, []string{"antelias"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{Activity: "soft-play"})
	require.NoError(t, err)
	require.Equal(t, []string{"monteverde", "antelias"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{Neighborhood: "near-beirut"})
	require.NoError(t, err)
	require.Equal(t, []string{"antelias", "sports-zone"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{Query: "trampoline"})
	require.NoError(t, err)
	require.Equal(t, []string{"monteverde"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{Query: "TODDLERS"})
	require.NoError(t, err)
	require.Equal(t, []string{"monteverde"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{OpenNow: true})
	require.NoError(t, err)
	require.Equal(t, []string{"antelias", "sports-zone"}, slugs(got))
}

func TestListBranchesSortOrders(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(fixture(), beirut(t, "2025-01-06 21:00"))

	got, err := svc.ListBranches(ctx, BranchFilter{Sort: SortCity})
	require.NoError(t, err)
	require.Equal(t, []string{"antelias", "sports-zone", "monteverde"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{Sort: SortOpen})
	require.NoError(t, err)
	require.Equal(t, []string{"antelias", "sports-zone", "monteverde"}, slugs(got))

	got, err = svc.ListBranches(ctx, BranchFilter{Sort: SortName})
	require.NoError(t, err)
	require.Equal(t, []string{"antelias", "monteverde", "sports-zone"}, slugs(got))
}

func TestListBranchesUnknownNeighborhood(t *testing.T) {
	svc := newTestService(fixture(), time.Now())
	_, err := svc.ListBranches(context.Background(), BranchFilter{Neighborhood: "mars"})
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestListBranchesRepositoryFailure(t *testing.T) {
	svc := newTestService(stubRepo{err: errors.New("db down")}, time.Now())
	_, err := svc.ListBranches(context.Background(), BranchFilter{})
	require.True(t, apperrors.IsCode(err, "catalog_error"))
}

func TestCitiesSortedAndUnique(t *testing.T) {
	repo := fixture()
	repo.branches = append(repo.branches, Branch{ID: "x", Slug: "x", City: "Antelias"})
	svc := newTestService(repo, time.Now())
	cities, err := svc.Cities(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Antelias", "Dbayeh", "Monteverde"}, cities)
}

func TestNeighborhoodCounts(t *testing.T) {
	svc := newTestService(fixture(), time.Now())
	got, err := svc.Neighborhoods(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 2, got[0].Count)
	require.Equal(t, 1, got[1].Count)
}

func TestCompare(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(fixture(), time.Now())

	got, err := svc.Compare(ctx, []string{"monteverde", "loc-monteverde", "dbayeh", ""})
	require.NoError(t, err)
	require.Equal(t, []string{"monteverde", "sports-zone"}, slugs(got))

	_, err = svc.Compare(ctx, nil)
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	repo := fixture()
	repo.branches = append(repo.branches, Branch{ID: "loc-zahle", Slug: "zahle", Name: "Fun Zone Zahle", City: "Zahle"})
	svc = newTestService(repo, time.Now())
	_, err = svc.Compare(ctx, []string{"monteverde", "antelias", "sports-zone", "zahle"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Compare(ctx, []string{"monteverde", "nowhere"})
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func activityIDs(items []Activity) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestListActivitiesFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(fixture(), time.Now())

	got, err := svc.ListActivities(ctx, ActivityFilter{})
	require.NoError(t, err)
	require.Len(t, got, 4)

	got, err = svc.ListActivities(ctx, ActivityFilter{Energy: EnergyHigh})
	require.NoError(t, err)
	require.Equal(t, []string{"trampoline", "ninja"}, activityIDs(got))

	got, err = svc.ListActivities(ctx, ActivityFilter{Location: "Fun Zone Antelias"})
	require.NoError(t, err)
	require.Equal(t, []string{"soft-play", "ninja"}, activityIDs(got))

	got, err = svc.ListActivities(ctx, ActivityFilter{Category: "SPORTS"})
	require.NoError(t, err)
	require.Equal(t, []string{"padel"}, activityIDs(got))
}

func TestListActivitiesAgeBands(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(fixture(), time.Now())

	cases := map[AgeBand][]string{
		AgeToddlers: {"soft-play"},
		AgeYoung:    {"soft-play", "trampoline", "ninja"},
		AgeKids:     {"trampoline", "ninja", "padel"},
		AgeTeens:    {"trampoline", "ninja", "padel"},
		"all":       {"soft-play", "trampoline", "ninja", "padel"},
	}
	for band, want := range cases {
		got, err := svc.ListActivities(ctx, ActivityFilter{Age: band})
		require.NoError(t, err, band)
		require.Equal(t, want, activityIDs(got), band)
	}

	_, err := svc.ListActivities(ctx, ActivityFilter{Age: "99+"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestCheckSchedules(t *testing.T) {
	branches := fixture().branches
	branches[0].Hours.Timezone = "Mars/Olympus"
	problems := CheckSchedules(branches)
	require.Len(t, problems, 1)
	require.Contains(t, problems, "monteverde")
}

func contentFixture() stubRepo {
	repo := fixture()
	repo.branches[0].HasBirthdays = true
	repo.branches[0].ShortDescription = "Cozy indoor play."
	repo.branches[1].HasBirthdays = true
	repo.branches[2].HasBirthdays = true
	repo.programs = []Program{
		{Slug: "summer-colony", Title: "Summer Colony Program"},
		{Slug: "sports-academy", Title: "Sports Academy"},
	}
	repo.birthdays = BirthdayCatalog{
		Default: BirthdayContent{
			Highlights:     []BirthdayHighlight{{Icon: "party", Title: "A full celebration"}},
			MenuVisibility: MenuContact,
			Notes:          []string{"Menus and inclusions can vary by branch and date."},
		},
		Branches: map[string]BirthdayContent{
			"antelias": {
				IntroTitle:     "Antelias Birthdays",
				MenuVisibility: MenuShown,
				MenuSections:   []MenuSection{{Title: "Kids Menu", Items: []string{"Fries"}}},
				Vibe:           Vibe{Icon: "sparkles", Label: "Jungle Adventure"},
			},
			"sports-zone": {
				IntroTitle:     "Sports Zone Birthdays",
				MenuVisibility: MenuContact,
				MenuSections:   []MenuSection{{Title: "Hidden", Items: []string{"Pizza"}}},
			},
		},
	}
	return repo
}

func TestPrograms(t *testing.T) {
	svc := newTestService(contentFixture(), time.Now())
	ctx := context.Background()

	programs, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, programs, 2)

	program, err := svc.GetProgram(ctx, "  Sports-Academy ")
	require.NoError(t, err)
	require.Equal(t, "Sports Academy", program.Title)

	_, err = svc.GetProgram(ctx, "winter-camp")
	require.True(t, apperrors.IsCode(err, "not_found"))

	failing := contentFixture()
	failing.err = errors.New("db down")
	_, err = newTestService(failing, time.Now()).ListPrograms(ctx)
	require.True(t, apperrors.IsCode(err, "catalog_error"))
}

func TestBirthdaysUsesBranchContent(t *testing.T) {
	svc := newTestService(contentFixture(), beirut(t, "2025-01-06 14:00"))

	page, err := svc.Birthdays(context.Background(), "antelias-branch")
	require.NoError(t, err)
	require.Equal(t, "antelias", page.Branch)
	require.Equal(t, "Antelias Branch", page.Title)
	require.Equal(t, "Antelias Birthdays", page.Content.IntroTitle)
	require.True(t, page.ShowMenu)
	require.Len(t, page.Content.MenuSections, 1)
	require.Equal(t, "Jungle Adventure", page.Content.Vibe.Label)
	require.Equal(t, "Hi! I'd like to ask about birthday parties at Antelias Branch.", page.BookingMessage())
	require.Equal(t, "antelias", page.Listing.Slug)
}

func TestBirthdaysFallsBackToDefaultContent(t *testing.T) {
	svc := newTestService(contentFixture(), time.Now())

	page, err := svc.Birthdays(context.Background(), "monteverde")
	require.NoError(t, err)
	require.Equal(t, "Monteverde Birthdays", page.Content.IntroTitle)
	require.Equal(t, "Cozy indoor play.", page.Content.IntroDescription)
	require.Equal(t, "A full celebration", page.Content.Highlights[0].Title)
	require.Equal(t, MenuContact, page.Content.MenuVisibility)
	require.Equal(t, "Party Time", page.Content.Vibe.Label)
	require.False(t, page.ShowMenu)
}

func TestBirthdaysHidesMenuShareOnRequest(t *testing.T) {
	svc := newTestService(contentFixture(), time.Now())

	page, err := svc.Birthdays(context.Background(), "sports-zone")
	require.NoError(t, err)
	require.Equal(t, "Fun Zone Sports", page.Title)
	require.False(t, page.ShowMenu)
	require.Nil(t, page.Content.MenuSections)
}

func TestBirthdaysRejectsBranchesWithoutParties(t *testing.T) {
	svc := newTestService(fixture(), time.Now())
	_, err := svc.Birthdays(context.Background(), "antelias")
	require.True(t, apperrors.IsCode(err, "not_found"))

	_, err = svc.Birthdays(context.Background(), "tripoli")
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestBirthdayBranches(t *testing.T) {
	repo := contentFixture()
	repo.branches[1].HasBirthdays = false
	svc := newTestService(repo, time.Now())

	items, err := svc.BirthdayBranches(context.Background())
	require.NoError(t, err)
	require.Equal(t, []BirthdayBranch{
		{Slug: "monteverde", Label: "Monteverde"},
		{Slug: "sports-zone", Label: "Sports Zone"},
	}, items)
}
