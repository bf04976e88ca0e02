package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// slugPattern restricts slugs to lowercase words joined by single hyphens so
// they are safe as both directory names and URL path segments.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidSlug reports whether s can be used as an output directory name.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// IssueKind classifies a record problem found during validation.
type IssueKind string

const (
	IssueInvalidSlug   IssueKind = "invalid_slug"
	IssueDuplicateSlug IssueKind = "duplicate_slug"
	IssueMissingTitle  IssueKind = "missing_title"
)

// Issue is one problem found in a data file. Skipped issues removed the record
// from the run; the others were repaired.
type Issue struct {
	File    string
	Index   int
	Slug    string
	Kind    IssueKind
	Skipped bool
}

func (i Issue) String() string {
	action := "fixed"
	if i.Skipped {
		action = "skipped"
	}
	return fmt.Sprintf("%s[%d] %q: %s (%s)", i.File, i.Index, i.Slug, i.Kind, action)
}

// TitleFromSlug turns "roof-repair" into "Roof Repair".
func TitleFromSlug(slug string) string {
	// Casers keep state and cannot be shared between goroutines.
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

// ValidateServices drops services with unusable or repeated slugs and fills
// in missing titles. Order of the surviving records is preserved.
func ValidateServices(in []Service) ([]Service, []Issue) {
	var issues []Issue
	out := make([]Service, 0, len(in))
	seen := make(map[string]bool, len(in))

	for i, s := range in {
		if kind, ok := checkSlug(s.Slug, seen); !ok {
			issues = append(issues, Issue{File: ServicesFile, Index: i, Slug: s.Slug, Kind: kind, Skipped: true})
			continue
		}
		seen[s.Slug] = true
		if strings.TrimSpace(s.Title) == "" {
			s.Title = TitleFromSlug(s.Slug)
			issues = append(issues, Issue{File: ServicesFile, Index: i, Slug: s.Slug, Kind: IssueMissingTitle})
		}
		out = append(out, s)
	}
	return out, issues
}

// ValidateAreas is ValidateServices for areas; a missing name is derived from
// the slug.
func ValidateAreas(in []Area) ([]Area, []Issue) {
	var issues []Issue
	out := make([]Area, 0, len(in))
	seen := make(map[string]bool, len(in))

	for i, a := range in {
		if kind, ok := checkSlug(a.Slug, seen); !ok {
			issues = append(issues, Issue{File: AreasFile, Index: i, Slug: a.Slug, Kind: kind, Skipped: true})
			continue
		}
		seen[a.Slug] = true
		if strings.TrimSpace(a.Name) == "" {
			a.Name = TitleFromSlug(a.Slug)
			issues = append(issues, Issue{File: AreasFile, Index: i, Slug: a.Slug, Kind: IssueMissingTitle})
		}
		out = append(out, a)
	}
	return out, issues
}

func checkSlug(slug string, seen map[string]bool) (IssueKind, bool) {
	if !ValidSlug(slug) {
		return IssueInvalidSlug, false
	}
	if seen[slug] {
		return IssueDuplicateSlug, false
	}
	return "", true
}

// HasSkipped reports whether any issue removed a record.
func HasSkipped(issues []Issue) bool {
	for _, i := range issues {
		if i.Skipped {
			return true
		}
	}
	return false
}
