package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/yanqian/funzone-site/internal/domain/hours"
	apperrors "github.com/yanqian/funzone-site/pkg/errors"
	"github.com/yanqian/funzone-site/pkg/util"
)

// MaxCompare caps how many branches can be compared side by side.
const MaxCompare = 3

// Service exposes branch discovery over the static catalog.
type Service interface {
	ListBranches(ctx context.Context, filter BranchFilter) ([]Listing, error)
	GetBranch(ctx context.Context, ref string) (Listing, error)
	BranchStatus(ctx context.Context, ref string, at time.Time) (StatusReport, error)
	Cities(ctx context.Context) ([]string, error)
	Neighborhoods(ctx context.Context) ([]NeighborhoodCount, error)
	Compare(ctx context.Context, refs []string) ([]Listing, error)
	ListActivities(ctx context.Context, filter ActivityFilter) ([]Activity, error)
	ListPrograms(ctx context.Context) ([]Program, error)
	GetProgram(ctx context.Context, slug string) (Program, error)
	BirthdayBranches(ctx context.Context) ([]BirthdayBranch, error)
	Birthdays(ctx context.Context, ref string) (BirthdayPage, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    util.Clock
}

// NewService wires up the catalog domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "catalog.service"),
		now:    util.NowUTC,
	}
}

func (s *service) ListBranches(ctx context.Context, filter BranchFilter) ([]Listing, error) {
	branches, err := s.branches(ctx)
	if err != nil {
		return nil, err
	}

	var neighborhood *Neighborhood
	if id := strings.TrimSpace(filter.Neighborhood); !isAll(id) {
		n, err := s.findNeighborhood(ctx, id)
		if err != nil {
			return nil, err
		}
		neighborhood = &n
	}

	activityNames := map[string]string{}
	if strings.TrimSpace(filter.Query) != "" {
		activities, err := s.activities(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range activities {
			activityNames[a.ID] = a.Name
		}
	}

	now := s.now()
	listings := make([]Listing, 0, len(branches))
	for _, b := range branches {
		if !filter.matches(b, neighborhood, activityNames) {
			continue
		}
		listing := newListing(b, now)
		if filter.OpenNow && listing.Status.State != hours.StateOpen {
			continue
		}
		listings = append(listings, listing)
	}
	sortListings(listings, filter.Sort)
	return listings, nil
}

func (s *service) GetBranch(ctx context.Context, ref string) (Listing, error) {
	b, err := s.resolve(ctx, ref)
	if err != nil {
		return Listing{}, err
	}
	return newListing(b, s.now()), nil
}

func (s *service) BranchStatus(ctx context.Context, ref string, at time.Time) (StatusReport, error) {
	b, err := s.resolve(ctx, ref)
	if err != nil {
		return StatusReport{}, err
	}
	if at.IsZero() {
		at = s.now()
	}
	return StatusReport{Branch: b.Slug, At: at, Status: hours.Describe(b.Hours, at)}, nil
}

func (s *service) Cities(ctx context.Context) ([]string, error) {
	branches, err := s.branches(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(branches))
	cities := make([]string, 0, len(branches))
	for _, b := range branches {
		if _, ok := seen[b.City]; ok || b.City == "" {
			continue
		}
		seen[b.City] = struct{}{}
		cities = append(cities, b.City)
	}
	sort.Strings(cities)
	return cities, nil
}

func (s *service) Neighborhoods(ctx context.Context) ([]NeighborhoodCount, error) {
	branches, err := s.branches(ctx)
	if err != nil {
		return nil, err
	}
	neighborhoods, err := s.repo.Neighborhoods(ctx)
	if err != nil {
		return nil, apperrors.Wrap("catalog_error", "failed to load neighborhoods", err)
	}
	out := make([]NeighborhoodCount, 0, len(neighborhoods))
	for _, n := range neighborhoods {
		count := 0
		for _, b := range branches {
			if n.Matches(b) {
				count++
			}
		}
		out = append(out, NeighborhoodCount{Neighborhood: n, Count: count})
	}
	return out, nil
}

func (s *service) Compare(ctx context.Context, refs []string) ([]Listing, error) {
	branches, err := s.branches(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	seen := map[string]struct{}{}
	out := make([]Listing, 0, MaxCompare)
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		b, ok := findBranch(branches, ref)
		if !ok {
			return nil, apperrors.Wrap("not_found", "branch not found: "+ref, nil)
		}
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, newListing(b, now))
	}
	if len(out) == 0 {
		return nil, apperrors.Wrap("invalid_input", "select at least one branch to compare", nil)
	}
	if len(out) > MaxCompare {
		return nil, apperrors.Wrap("invalid_input", "compare supports up to 3 branches", nil)
	}
	return out, nil
}

func (s *service) ListActivities(ctx context.Context, filter ActivityFilter) ([]Activity, error) {
	if !ValidAgeBand(filter.Age) {
		return nil, apperrors.Wrap("invalid_input", "unknown age band: "+string(filter.Age), nil)
	}
	if !isAll(filter.Location) {
		b, err := s.resolve(ctx, filter.Location)
		if err != nil {
			return nil, err
		}
		filter.Location = b.Slug
	} else {
		filter.Location = ""
	}

	activities, err := s.activities(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		if filter.matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *service) resolve(ctx context.Context, ref string) (Branch, error) {
	branches, err := s.branches(ctx)
	if err != nil {
		return Branch{}, err
	}
	b, ok := findBranch(branches, ref)
	if !ok {
		return Branch{}, apperrors.Wrap("not_found", "branch not found: "+ref, nil)
	}
	return b, nil
}

func (s *service) findNeighborhood(ctx context.Context, id string) (Neighborhood, error) {
	neighborhoods, err := s.repo.Neighborhoods(ctx)
	if err != nil {
		return Neighborhood{}, apperrors.Wrap("catalog_error", "failed to load neighborhoods", err)
	}
	for _, n := range neighborhoods {
		if strings.EqualFold(n.ID, id) {
			return n, nil
		}
	}
	return Neighborhood{}, apperrors.Wrap("not_found", "neighborhood not found: "+id, nil)
}

func (s *service) branches(ctx context.Context) ([]Branch, error) {
	branches, err := s.repo.Branches(ctx)
	if err != nil {
		s.logger.Error("load branches failed", "error", err)
		return nil, apperrors.Wrap("catalog_error", "failed to load branches", err)
	}
	return branches, nil
}

func (s *service) activities(ctx context.Context) ([]Activity, error) {
	activities, err := s.repo.Activities(ctx)
	if err != nil {
		s.logger.Error("load activities failed", "error", err)
		return nil, apperrors.Wrap("catalog_error", "failed to load activities", err)
	}
	return activities, nil
}

func newListing(b Branch, now time.Time) Listing {
	return Listing{
		Branch:       b,
		TypeLabel:    b.Type.DisplayName(),
		HoursSummary: hours.Summary(b.Hours),
		Status:       hours.Describe(b.Hours, now),
	}
}

// CheckSchedules validates every branch schedule and returns the failures
// keyed by branch slug.
func CheckSchedules(branches []Branch) map[string]error {
	problems := map[string]error{}
	for _, b := range branches {
		if err := hours.Validate(b.Hours); err != nil {
			problems[b.Slug] = err
		}
	}
	return problems
}
