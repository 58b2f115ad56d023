package catalog

import (
	"sort"
	"strings"

	"github.com/yanqian/funzone-site/internal/domain/hours"
)

// SortOrder selects the ordering of ListBranches.
type SortOrder string

const (
	SortCatalog SortOrder = ""
	SortName    SortOrder = "name"
	SortCity    SortOrder = "city"
	// SortOpen puts open branches first, then orders by name.
	SortOpen SortOrder = "open"
)

// BranchFilter narrows ListBranches. Zero values mean "all".
type BranchFilter struct {
	Type         BranchType
	City         string
	Activity     string
	Neighborhood string
	Query        string
	OpenNow      bool
	Sort         SortOrder
}

// AgeBand is one of the fixed age filters on the activities page.
type AgeBand string

const (
	AgeAll      AgeBand = ""
	AgeToddlers AgeBand = "1-3"
	AgeYoung    AgeBand = "3-6"
	AgeKids     AgeBand = "6-12"
	AgeTeens    AgeBand = "12+"
)

var ageBands = map[AgeBand]struct {
	min int
	max int // -1 is unbounded
}{
	AgeToddlers: {min: 1, max: 3},
	AgeYoung:    {min: 3, max: 6},
	AgeKids:     {min: 6, max: 12},
	AgeTeens:    {min: 12, max: -1},
}

// ValidAgeBand reports whether band is a known age filter.
func ValidAgeBand(band AgeBand) bool {
	if band == AgeAll || band == "all" {
		return true
	}
	_, ok := ageBands[band]
	return ok
}

// ActivityFilter narrows ListActivities. Zero values mean "all".
type ActivityFilter struct {
	Energy   EnergyLevel
	Age      AgeBand
	Location string
	Category string
}

func matchesAge(a Activity, band AgeBand) bool {
	bounds, ok := ageBands[band]
	if !ok {
		return true
	}
	// Overlap of [a.Min, a.Max] and [bounds.min, bounds.max], nil/-1 = infinity.
	if bounds.max >= 0 && a.AgeRange.Min > bounds.max {
		return false
	}
	if a.AgeRange.Max != nil && *a.AgeRange.Max < bounds.min {
		return false
	}
	return true
}

func (f ActivityFilter) matches(a Activity) bool {
	if !isAll(string(f.Energy)) && a.EnergyLevel != f.Energy {
		return false
	}
	if !isAll(f.Category) && !strings.EqualFold(a.Category, f.Category) {
		return false
	}
	if f.Location != "" && !containsString(a.AvailableAt, f.Location) {
		return false
	}
	return matchesAge(a, f.Age)
}

func (f BranchFilter) matches(b Branch, neighborhood *Neighborhood, activityNames map[string]string) bool {
	if !isAll(string(f.Type)) && b.Type != f.Type {
		return false
	}
	if !isAll(f.City) && b.City != f.City {
		return false
	}
	if !isAll(f.Activity) && !containsString(b.Activities, f.Activity) {
		return false
	}
	if neighborhood != nil && !neighborhood.Matches(b) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(searchHaystack(b, activityNames), q)
}

// searchHaystack joins every searchable field of b, lower-cased.
func searchHaystack(b Branch, activityNames map[string]string) string {
	names := make([]string, 0, len(b.Activities))
	for _, id := range b.Activities {
		if name, ok := activityNames[id]; ok {
			names = append(names, name)
			continue
		}
		names = append(names, id)
	}
	parts := []string{b.Name, b.City, b.AddressText, strings.Join(names, " "), strings.Join(b.Tags, " ")}
	return strings.ToLower(strings.Join(parts, " "))
}

func sortListings(items []Listing, order SortOrder) {
	switch order {
	case SortName:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	case SortCity:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].City == items[j].City {
				return items[i].Name < items[j].Name
			}
			return items[i].City < items[j].City
		})
	case SortOpen:
		sort.SliceStable(items, func(i, j int) bool {
			oi, oj := items[i].Status.State == hours.StateOpen, items[j].Status.State == hours.StateOpen
			if oi != oj {
				return oi
			}
			return items[i].Name < items[j].Name
		})
	}
}

// isAll reports whether a filter value means "no restriction".
func isAll(value string) bool {
	return value == "" || value == "all"
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
