package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayline/availability-engine/engine"
	"github.com/stayline/availability-engine/store"
)

func sampleDataset(name string, createdAt time.Time) store.Dataset {
	return store.Dataset{
		ID:        store.NewID(),
		Name:      name,
		CreatedAt: createdAt,
		Apartments: []engine.Apartment{
			{Name: "Studio A", Owner: "Durand", Category: "studio", Commission: decimal.NewFromFloat(0.2)},
		},
		Reservations: []engine.Reservation{
			{
				Apartment: "Studio A",
				Arrival:   engine.NewDate(2025, time.October, 22),
				Departure: engine.NewDate(2025, time.October, 25),
				Status:    "Confirmé",
				Price:     decimal.NewFromInt(150),
				Nights:    3,
				Category:  "studio",
				Owner:     "Durand",
			},
		},
	}
}

func TestMemory_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	d := sampleDataset("october", time.Now())

	require.NoError(t, m.Save(ctx, d))

	got, err := m.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Name, got.Name)
	require.Len(t, got.Reservations, 1)
	assert.Equal(t, "Studio A", got.Reservations[0].Apartment)
}

func TestMemory_GetUnknownID(t *testing.T) {
	_, err := store.NewMemory().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemory_GetReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	d := sampleDataset("october", time.Now())
	require.NoError(t, m.Save(ctx, d))

	first, err := m.Get(ctx, d.ID)
	require.NoError(t, err)
	first.Reservations[0].Apartment = "mutated"

	second, err := m.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio A", second.Reservations[0].Apartment)
}

func TestMemory_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	base := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	older := sampleDataset("older", base)
	newer := sampleDataset("newer", base.Add(time.Hour))
	require.NoError(t, m.Save(ctx, older))
	require.NoError(t, m.Save(ctx, newer))

	infos, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "newer", infos[0].Name)
	assert.Equal(t, "older", infos[1].Name)
	assert.Equal(t, 1, infos[0].Apartments)
	assert.Equal(t, 1, infos[0].Reservations)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	d := sampleDataset("october", time.Now())
	require.NoError(t, m.Save(ctx, d))

	require.NoError(t, m.Delete(ctx, d.ID))
	_, err := m.Get(ctx, d.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, d.ID), store.ErrNotFound)
}
