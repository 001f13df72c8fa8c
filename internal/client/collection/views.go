// Package collection holds the fetched review set and derives the filtered,
// sorted and categorized views the UI renders.
package collection

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/revumeapp/revume-cli/internal/client/models"
)

// SortKey selects the ordering of the filtered list.
type SortKey string

const (
	SortUpdated SortKey = "updated"
	SortRating  SortKey = "rating"
	SortTitle   SortKey = "title"
	SortDate    SortKey = "date"
)

// SortKeys lists the valid keys in display order.
var SortKeys = []SortKey{SortUpdated, SortRating, SortTitle, SortDate}

func ValidSortKey(s string) bool {
	for _, k := range SortKeys {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Criteria is the transient, user-entered view state. It is reset on logout
// and never persisted.
type Criteria struct {
	SearchTerm     string
	TypeFilter     string
	CategoryFilter string
	SortKey        SortKey
}

// newCollator returns the locale-aware comparator used for category tags and
// titles. English collation is the pinned policy: case differences order
// stably ("Brunch" < "Coffee") without splitting the alphabet the way plain
// byte comparison does.
func newCollator(ignoreCase bool) *collate.Collator {
	if ignoreCase {
		return collate.New(language.English, collate.IgnoreCase)
	}
	return collate.New(language.English)
}

// Categories derives the distinct category tags across all reviews.
// Tags are deduplicated case-insensitively keeping the first-seen spelling,
// then ordered by the locale collator.
func Categories(reviews []models.Review) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range reviews {
		for _, tag := range r.CategoryTokens() {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tag)
		}
	}
	newCollator(true).SortStrings(out)
	return out
}

// FilterSort returns the reviews passing all three predicates, ordered by
// the sort key. It is a pure function: the input slice is not modified.
func FilterSort(reviews []models.Review, cr Criteria) []models.Review {
	term := strings.ToLower(strings.TrimSpace(cr.SearchTerm))

	out := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if term != "" && !strings.Contains(strings.ToLower(r.SearchText()), term) {
			continue
		}
		if cr.TypeFilter != "" && string(r.Type) != cr.TypeFilter {
			continue
		}
		if cr.CategoryFilter != "" && !r.HasCategory(cr.CategoryFilter) {
			continue
		}
		out = append(out, r)
	}

	sortReviews(out, cr.SortKey)
	return out
}

func sortReviews(rs []models.Review, key SortKey) {
	coll := newCollator(false)
	sort.SliceStable(rs, func(i, j int) bool {
		switch key {
		case SortRating:
			return rs[i].Rating > rs[j].Rating
		case SortTitle:
			return coll.CompareString(rs[i].Title, rs[j].Title) < 0
		case SortDate:
			return rs[i].Date > rs[j].Date
		default:
			// Updated descending; a missing timestamp is the empty string
			// and therefore sorts last.
			return rs[i].Updated > rs[j].Updated
		}
	})
}
