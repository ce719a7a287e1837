/*
Package inventory holds the apartment-side domain logic: the normalized
apartment and reservation tables, the join that attaches owner and category
to each reservation, and category classification.

CATEGORIES:
  Apartments are classified as "studio" or "1 chambre" through "6 chambres".
  The set is ordered: studio first, then by bedroom count; anything else
  sorts last. The strings are the ones the reservation export uses, so they
  are kept verbatim rather than translated.

SEE ALSO:
  - merge.go: the reservation/apartment join and Unassigned synthesis
  - engine: the availability computations these tables feed
*/
package inventory

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// categoryPriority fixes the display order of known categories. Unknown
// categories sort after every known one, keeping their encounter order.
var categoryPriority = map[string]int{
	"studio":     1,
	"1 chambre":  2,
	"2 chambres": 3,
	"3 chambres": 4,
	"4 chambres": 5,
	"5 chambres": 6,
	"6 chambres": 7,
}

const unknownCategoryPriority = 999

var digits = regexp.MustCompile(`\d+`)

// InferCategory guesses an apartment's category from its name. It is a
// documented fallback for apartments missing from the mapping, not a
// reliable classifier: a "studio" keyword wins, then a bedroom keyword with
// a digit between 1 and 6, and everything else lands on "1 chambre".
func InferCategory(name string) string {
	lower := strings.ToLower(name)

	if strings.Contains(lower, "studio") {
		return "studio"
	}
	if strings.Contains(lower, "chambre") || strings.Contains(lower, "bedroom") {
		if m := digits.FindString(lower); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 6 {
				if n == 1 {
					return "1 chambre"
				}
				return strconv.Itoa(n) + " chambres"
			}
		}
	}
	return "1 chambre"
}

// CategoryPriority returns the sort rank of a category.
func CategoryPriority(category string) int {
	if p, ok := categoryPriority[strings.TrimSpace(category)]; ok {
		return p
	}
	return unknownCategoryPriority
}

// SortCategories orders categories by the fixed priority list, studio first.
// Unknown categories keep their relative order after the known ones. Sorts
// in place and returns the slice.
func SortCategories(categories []string) []string {
	sort.SliceStable(categories, func(i, j int) bool {
		return CategoryPriority(categories[i]) < CategoryPriority(categories[j])
	})
	return categories
}

// CategoryLabel formats a category for its price summary row.
func CategoryLabel(category string) string {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" || trimmed == "0" {
		return "Non catégorisé"
	}
	return "Prix moyen - " + trimmed
}

// validCategory reports whether a category participates in aggregations.
// Empty and "0" values are excluded everywhere.
func validCategory(category string) bool {
	return category != "" && category != "0"
}
