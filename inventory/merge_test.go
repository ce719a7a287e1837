package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stayline/availability-engine/engine"
	"github.com/stayline/availability-engine/inventory"
)

func mappedApartment(name, owner, category string) engine.Apartment {
	return engine.Apartment{
		Name:       name,
		Owner:      owner,
		Category:   category,
		Commission: decimal.NewFromFloat(0.15),
	}
}

func reservationFor(apartment string) engine.Reservation {
	return engine.Reservation{
		Apartment: apartment,
		Arrival:   engine.NewDate(2025, time.October, 2),
		Departure: engine.NewDate(2025, time.October, 5),
		Status:    "Confirmé",
		Price:     decimal.NewFromInt(300),
		Nights:    3,
	}
}

func TestMerge_JoinsOwnerAndCategory(t *testing.T) {
	// GIVEN: A mapped apartment and one reservation for it
	// WHEN: Merging
	// THEN: The reservation carries the apartment's owner and category

	apartments := []engine.Apartment{mappedApartment("Studio A", "Durand", "studio")}
	reservations := []engine.Reservation{reservationFor("Studio A")}

	result := inventory.Merge(apartments, reservations)

	require.Len(t, result.Reservations, 1)
	assert.Equal(t, "Durand", result.Reservations[0].Owner)
	assert.Equal(t, "studio", result.Reservations[0].Category)
	assert.Empty(t, result.Synthesized)
}

func TestMerge_SynthesizesMissingApartments(t *testing.T) {
	// GIVEN: A reservation for an apartment absent from the mapping
	// WHEN: Merging
	// THEN: A placeholder apartment appears under Unassigned with an
	//       inferred category, and the reservation is bucketed into it

	apartments := []engine.Apartment{mappedApartment("Studio A", "Durand", "studio")}
	reservations := []engine.Reservation{reservationFor("Villa 3 chambres Mer")}

	result := inventory.Merge(apartments, reservations)

	require.Len(t, result.Synthesized, 1)
	synthesized := result.Synthesized[0]
	assert.Equal(t, "Villa 3 chambres Mer", synthesized.Name)
	assert.Equal(t, inventory.UnassignedOwner, synthesized.Owner)
	assert.Equal(t, "3 chambres", synthesized.Category)
	assert.True(t, synthesized.Commission.Equal(decimal.NewFromFloat(0.2)))

	assert.Len(t, result.Apartments, 2)
	assert.Equal(t, "3 chambres", result.Reservations[0].Category)
}

func TestMerge_SameMissingApartmentSynthesizedOnce(t *testing.T) {
	apartments := []engine.Apartment{}
	reservations := []engine.Reservation{
		reservationFor("Villa Inconnue"),
		reservationFor("Villa Inconnue"),
	}

	result := inventory.Merge(apartments, reservations)

	assert.Len(t, result.Synthesized, 1)
	assert.Len(t, result.Apartments, 1)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	// GIVEN: A mapping and reservations for an unmapped apartment
	// WHEN: Merging twice from the same inputs
	// THEN: Inputs are untouched and the second run synthesizes identically
	//       (no duplicated placeholder rows)

	apartments := []engine.Apartment{mappedApartment("Studio A", "Durand", "studio")}
	reservations := []engine.Reservation{reservationFor("Villa Inconnue")}

	first := inventory.Merge(apartments, reservations)
	second := inventory.Merge(apartments, reservations)

	assert.Len(t, apartments, 1, "input mapping must not grow")
	assert.Empty(t, reservations[0].Owner, "input reservations must not be annotated")
	assert.Equal(t, first.Apartments, second.Apartments)
	assert.Equal(t, first.Reservations, second.Reservations)
}

func TestCategories_UnionSortedAndFiltered(t *testing.T) {
	apartments := []engine.Apartment{
		mappedApartment("A", "Durand", "2 chambres"),
		mappedApartment("B", "Durand", "0"),
		mappedApartment("C", "Durand", ""),
	}
	reservations := []engine.Reservation{
		{Apartment: "X", Category: "studio"},
		{Apartment: "Y", Category: "studio"},
		{Apartment: "Z", Category: "penthouse"},
	}

	categories := inventory.Categories(reservations, apartments)

	assert.Equal(t, []string{"studio", "2 chambres", "penthouse"}, categories)
}

func TestOwners_SortedUnique(t *testing.T) {
	apartments := []engine.Apartment{
		mappedApartment("A", "Martin", "studio"),
		mappedApartment("B", "Durand", "studio"),
		mappedApartment("C", "Martin", "studio"),
	}

	assert.Equal(t, []string{"Durand", "Martin"}, inventory.Owners(apartments))
}

func TestApartmentsForOwner_SortedByName(t *testing.T) {
	apartments := []engine.Apartment{
		mappedApartment("Zebra", "Durand", "studio"),
		mappedApartment("Alpha", "Durand", "studio"),
		mappedApartment("Other", "Martin", "studio"),
	}

	owned := inventory.ApartmentsForOwner(apartments, "Durand")
	require.Len(t, owned, 2)
	assert.Equal(t, "Alpha", owned[0].Name)
	assert.Equal(t, "Zebra", owned[1].Name)
}
