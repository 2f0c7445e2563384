package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/scheduling"
	"github.com/yeremiapane/restaurant-floor/storedb"
)

func newEngine(t *testing.T) (*scheduling.Engine, *storedb.Collection) {
	t.Helper()
	c, err := storedb.OpenCollection(t.TempDir(), "reservations", nil)
	require.NoError(t, err)
	return scheduling.NewEngine(c), c
}

func book(t *testing.T, c *storedb.Collection, tableID, date, start, end, status string) string {
	t.Helper()
	rec, err := c.InsertOne(models.Reservation{
		TableID:    tableID,
		CustomerID: "1",
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	}.Record())
	require.NoError(t, err)
	return rec.ID()
}

func TestTouchingEndpointsDoNotOverlap(t *testing.T) {
	engine, c := newEngine(t)
	book(t, c, "1", "2030-05-10", "10:00", "11:00", models.ReservationConfirmed)

	// [10:00,11:00) and [11:00,12:00) share only the boundary.
	assert.True(t, engine.Available("1", "2030-05-10", "11:00", "12:00", ""))
	assert.True(t, engine.Available("1", "2030-05-10", "09:00", "10:00", ""))
}

func TestPartialOverlapBlocksBothWays(t *testing.T) {
	engine, c := newEngine(t)
	book(t, c, "1", "2030-05-10", "10:00", "11:00", models.ReservationConfirmed)

	assert.False(t, engine.Available("1", "2030-05-10", "10:30", "11:30", ""))
	assert.False(t, engine.Available("1", "2030-05-10", "09:30", "10:30", ""))
	// Containment in either direction blocks too.
	assert.False(t, engine.Available("1", "2030-05-10", "09:00", "12:00", ""))
	assert.False(t, engine.Available("1", "2030-05-10", "10:15", "10:45", ""))
}

func TestAvailabilityScopes(t *testing.T) {
	engine, c := newEngine(t)
	book(t, c, "1", "2030-05-10", "10:00", "11:00", models.ReservationConfirmed)

	// Other tables and other dates are unaffected.
	assert.True(t, engine.Available("2", "2030-05-10", "10:00", "11:00", ""))
	assert.True(t, engine.Available("1", "2030-05-11", "10:00", "11:00", ""))
}

func TestCancelledReservationsDoNotBlock(t *testing.T) {
	engine, c := newEngine(t)
	book(t, c, "1", "2030-05-10", "10:00", "11:00", models.ReservationCancelled)

	assert.True(t, engine.Available("1", "2030-05-10", "10:00", "11:00", ""))
}

func TestExcludeIDIgnoresTheEditedReservation(t *testing.T) {
	engine, c := newEngine(t)
	resID := book(t, c, "1", "2030-05-10", "10:00", "11:00", models.ReservationConfirmed)

	// Editing a reservation onto its own slot must not conflict with itself.
	assert.False(t, engine.Available("1", "2030-05-10", "10:00", "11:00", ""))
	assert.True(t, engine.Available("1", "2030-05-10", "10:00", "11:00", resID))
}

func TestStatusDerivation(t *testing.T) {
	engine, c := newEngine(t)
	now := time.Date(2030, 5, 10, 12, 0, 0, 0, time.UTC)
	table := models.Table{ID: "1", TableNumber: "1", IsAvailable: true}

	assert.Equal(t, scheduling.StatusFree, engine.StatusOf(table, now))

	// A reservation later today demotes the table to reserved_today.
	later := book(t, c, "1", "2030-05-10", "18:00", "19:00", models.ReservationConfirmed)
	assert.Equal(t, scheduling.StatusReservedToday, engine.StatusOf(table, now))

	// One containing now wins: [11:30, 12:30) holds 12:00.
	book(t, c, "1", "2030-05-10", "11:30", "12:30", models.ReservationConfirmed)
	assert.Equal(t, scheduling.StatusOccupiedNow, engine.StatusOf(table, now))

	// Half-open containment: a reservation ending exactly now does not occupy.
	_, err := c.DeleteMany(storedb.Where(storedb.Eq("startTime", storedb.String("11:30"))))
	require.NoError(t, err)
	_, err = c.DeleteOne(storedb.Where(storedb.Eq("id", storedb.String(later))))
	require.NoError(t, err)
	book(t, c, "1", "2030-05-10", "11:00", "12:00", models.ReservationConfirmed)
	assert.Equal(t, scheduling.StatusReservedToday, engine.StatusOf(table, now))

	// Cancelled reservations are invisible to status derivation.
	_, err = c.UpdateMany(storedb.Where(storedb.Eq("tableId", storedb.String("1"))),
		storedb.NewRecord().Set("status", storedb.String(models.ReservationCancelled)))
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusFree, engine.StatusOf(table, now))

	table.IsAvailable = false
	assert.Equal(t, scheduling.StatusUnavailable, engine.StatusOf(table, now))
}

func TestCheckWindow(t *testing.T) {
	now := time.Date(2030, 5, 10, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, scheduling.CheckWindow("2030-05-10", "13:00", "14:00", now))
	assert.NoError(t, scheduling.CheckWindow("2030-05-11", "08:00", "22:00", now))

	tests := []struct {
		name             string
		date, start, end string
	}{
		{"past date", "2030-05-09", "13:00", "14:00"},
		{"same-day start not after now", "2030-05-10", "11:00", "14:00"},
		{"same-day start equal to now", "2030-05-10", "12:00", "14:00"},
		{"inverted interval", "2030-05-11", "14:00", "13:00"},
		{"shorter than an hour", "2030-05-11", "13:00", "13:45"},
		{"before opening", "2030-05-11", "07:00", "09:00"},
		{"past closing", "2030-05-11", "21:30", "22:30"},
		{"unpadded time", "2030-05-11", "9:00", "10:00"},
		{"garbage date", "someday", "13:00", "14:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, scheduling.CheckWindow(tc.date, tc.start, tc.end, now))
		})
	}
}
