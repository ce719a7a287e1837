package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/stayline/availability-engine/engine"
)

// UnassignedOwner is the owner synthesized apartments are filed under.
const UnassignedOwner = "Unassigned"

// defaultCommission applies to synthesized apartments.
var defaultCommission = decimal.NewFromFloat(0.2)

// MergeResult is the outcome of joining reservations with the apartment
// mapping. Both tables are new slices: Merge never mutates its inputs, so
// running it twice cannot duplicate synthesized apartments.
type MergeResult struct {
	// Reservations with Owner and Category filled in from the mapping.
	Reservations []engine.Reservation

	// Apartments is the mapping plus any synthesized rows, in input order.
	Apartments []engine.Apartment

	// Synthesized lists the apartments that were absent from the mapping
	// and auto-added under the Unassigned owner.
	Synthesized []engine.Apartment
}

// Merge joins owner, category and commission onto each reservation by
// apartment name. Reservations for apartments missing from the mapping get a
// placeholder apartment with owner "Unassigned" and a category inferred from
// the name, so every reservation lands in some category bucket downstream.
func Merge(apartments []engine.Apartment, reservations []engine.Reservation) MergeResult {
	byName := make(map[string]engine.Apartment, len(apartments))
	for _, apt := range apartments {
		byName[apt.Name] = apt
	}

	result := MergeResult{
		Reservations: make([]engine.Reservation, 0, len(reservations)),
		Apartments:   append([]engine.Apartment(nil), apartments...),
	}

	for _, r := range reservations {
		apt, ok := byName[r.Apartment]
		if !ok {
			apt = engine.Apartment{
				Name:       r.Apartment,
				Owner:      UnassignedOwner,
				Category:   InferCategory(r.Apartment),
				Commission: defaultCommission,
			}
			byName[r.Apartment] = apt
			result.Apartments = append(result.Apartments, apt)
			result.Synthesized = append(result.Synthesized, apt)
		}
		r.Owner = apt.Owner
		r.Category = apt.Category
		result.Reservations = append(result.Reservations, r)
	}

	return result
}

// Categories returns the ordered category set present in the reservation and
// apartment tables, excluding empty and "0" values.
func Categories(reservations []engine.Reservation, apartments []engine.Apartment) []string {
	seen := make(map[string]bool)
	var categories []string

	add := func(category string) {
		if validCategory(category) && !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}
	for _, r := range reservations {
		add(r.Category)
	}
	for _, apt := range apartments {
		add(apt.Category)
	}

	return SortCategories(categories)
}

// Owners returns the sorted unique owner names in the apartment table.
func Owners(apartments []engine.Apartment) []string {
	seen := make(map[string]bool)
	var owners []string
	for _, apt := range apartments {
		if apt.Owner != "" && !seen[apt.Owner] {
			seen[apt.Owner] = true
			owners = append(owners, apt.Owner)
		}
	}
	sort.Strings(owners)
	return owners
}

// ApartmentsForOwner returns one owner's apartments sorted by name.
func ApartmentsForOwner(apartments []engine.Apartment, owner string) []engine.Apartment {
	var result []engine.Apartment
	for _, apt := range apartments {
		if apt.Owner == owner {
			result = append(result, apt)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// SortByName returns a copy of the apartment table sorted by name.
func SortByName(apartments []engine.Apartment) []engine.Apartment {
	result := append([]engine.Apartment(nil), apartments...)
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
