package engine_test

import (
	"testing"
	"time"

	"github.com/stayline/availability-engine/engine"
)

func apartment(name, owner, category string) engine.Apartment {
	return engine.Apartment{Name: name, Owner: owner, Category: category}
}

func TestAvailabilitySummary_CountsPerCategory(t *testing.T) {
	// GIVEN: Three studios (one booked, one double-booked, one free) and one
	//        free 2-chambres apartment
	// WHEN: Summarizing availability for a period
	// THEN: Counts per category reflect each apartment's status; Total counts
	//       apartments regardless of status

	apartments := []engine.Apartment{
		apartment("Studio A", "Durand", "studio"),
		apartment("Studio B", "Durand", "studio"),
		apartment("Studio C", "Martin", "studio"),
		apartment("Grand Apt", "Martin", "2 chambres"),
	}
	reservations := []engine.Reservation{
		stay("Studio A", d(2025, time.October, 2), d(2025, time.October, 5)),
		stay("Studio B", d(2025, time.October, 2), d(2025, time.October, 5)),
		stay("Studio B", d(2025, time.October, 3), d(2025, time.October, 6)),
	}
	e := engine.New(reservations)
	p := period(d(2025, time.October, 2), d(2025, time.October, 4))

	summary := e.AvailabilitySummary(apartments, p)

	studios := summary["studio"]
	if studios.Total != 3 {
		t.Errorf("expected 3 studios, got %d", studios.Total)
	}
	if studios.Free != 1 || studios.Booked != 1 || studios.Overbooked != 1 {
		t.Errorf("unexpected studio counts: %+v", studios)
	}

	grands := summary["2 chambres"]
	if grands.Total != 1 || grands.Free != 1 {
		t.Errorf("unexpected 2 chambres counts: %+v", grands)
	}
}

func TestAvailabilitySummary_SkipsUncategorized(t *testing.T) {
	apartments := []engine.Apartment{
		apartment("Mystery Apt", "Durand", ""),
		apartment("Zero Apt", "Durand", "0"),
		apartment("Studio A", "Durand", "studio"),
	}
	e := engine.New(nil)
	p := period(d(2025, time.October, 1), d(2025, time.October, 3))

	summary := e.AvailabilitySummary(apartments, p)
	if len(summary) != 1 {
		t.Fatalf("expected only the studio bucket, got %d buckets", len(summary))
	}
	if _, ok := summary["studio"]; !ok {
		t.Error("studio bucket missing")
	}
}

func TestCategoryCounts_Format(t *testing.T) {
	cases := []struct {
		counts engine.CategoryCounts
		want   string
	}{
		{engine.CategoryCounts{Free: 5, Booked: 3, Total: 8}, "5D/3R"},
		{engine.CategoryCounts{Free: 5, Booked: 3, Overbooked: 1, Total: 9}, "5D/3R/1S"},
		{engine.CategoryCounts{Total: 0}, "0D/0R"},
	}
	for _, tc := range cases {
		if got := tc.counts.Format(); got != tc.want {
			t.Errorf("Format(%+v) = %q, want %q", tc.counts, got, tc.want)
		}
	}
}

func TestAvailabilityStatus_Strings(t *testing.T) {
	if engine.StatusFree.String() != "Disponible" ||
		engine.StatusBooked.String() != "Réservé" ||
		engine.StatusOverbooked.String() != "Surbooking" {
		t.Error("status strings must match the report vocabulary")
	}
	if engine.StatusFree.Code() != "D" || engine.StatusBooked.Code() != "R" || engine.StatusOverbooked.Code() != "S" {
		t.Error("status codes must be D/R/S")
	}
}
