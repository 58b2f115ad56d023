package catalog

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	branchSuffix = regexp.MustCompile(`-?branch$`)
	apostrophes  = strings.NewReplacer("’", "", "'", "")
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	brandPrefix  = regexp.MustCompile(`(?i)^fun zone\s*`)
)

func normalizeRef(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		decoded = value
	}
	return strings.ToLower(strings.TrimSpace(decoded))
}

func slugify(value string) string {
	s := apostrophes.Replace(normalizeRef(value))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// findBranch resolves a user supplied reference by slug, then id, then
// city, then name. Each step also accepts the reference without a
// trailing "branch" suffix.
func findBranch(branches []Branch, ref string) (Branch, bool) {
	normalized := normalizeRef(ref)
	if normalized == "" {
		return Branch{}, false
	}
	slug := slugify(normalized)
	wanted := map[string]struct{}{
		normalized: {},
		slug:       {},
		strings.Trim(branchSuffix.ReplaceAllString(normalized, ""), " -"): {},
		strings.Trim(branchSuffix.ReplaceAllString(slug, ""), "-"):        {},
	}
	matches := func(candidate string) bool {
		if candidate == "" {
			return false
		}
		_, ok := wanted[candidate]
		return ok
	}

	steps := []func(Branch) bool{
		func(b Branch) bool { return matches(normalizeRef(b.Slug)) },
		func(b Branch) bool { return matches(normalizeRef(b.ID)) },
		func(b Branch) bool { return matches(slugify(b.City)) },
		func(b Branch) bool {
			return matches(slugify(b.Name)) || matches(slugify(brandPrefix.ReplaceAllString(b.Name, "")))
		},
	}
	for _, step := range steps {
		for _, b := range branches {
			if step(b) {
				return b, true
			}
		}
	}
	return Branch{}, false
}
