package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/storedb"
)

// TableStatus is the derived display state of a table.
type TableStatus string

const (
	StatusFree          TableStatus = "free"
	StatusReservedToday TableStatus = "reserved_today"
	StatusOccupiedNow   TableStatus = "occupied_now"
	StatusUnavailable   TableStatus = "unavailable"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// Operating window for reservations.
	OpeningTime = "08:00"
	ClosingTime = "22:00"

	// Minimum reservation length.
	MinDuration = 60 * time.Minute
)

// Engine answers availability and live-status questions over the
// reservations collection. It only reads; rejected bookings never touch the
// store.
type Engine struct {
	reservations *storedb.Collection
}

func NewEngine(reservations *storedb.Collection) *Engine {
	return &Engine{reservations: reservations}
}

// Available reports whether the half-open window [start, end) on date is
// free for the table. A non-cancelled reservation blocks the window iff
// existingStart < end AND existingEnd > start, so touching endpoints never
// overlap. excludeID lets an edit-in-place ignore the reservation being
// edited; pass "" otherwise.
func (e *Engine) Available(tableID, date, start, end, excludeID string) bool {
	conds := []storedb.Cond{
		storedb.Eq("tableId", storedb.String(tableID)),
		storedb.Eq("reservationDate", storedb.String(date)),
		storedb.Ne("status", storedb.String(models.ReservationCancelled)),
	}
	if excludeID != "" {
		conds = append(conds, storedb.Ne("id", storedb.String(excludeID)))
	}
	pred := storedb.Where(conds...).Any(storedb.Where(
		storedb.Lt("startTime", storedb.String(end)),
		storedb.Gt("endTime", storedb.String(start)),
	))
	_, overlapping := e.reservations.FindOne(pred)
	return !overlapping
}

// StatusOf derives the table's current display status from today's
// non-cancelled reservations. A reservation containing now (start <= now <
// end) wins; any other reservation today demotes the table to
// reserved_today; otherwise the table's own availability flag decides.
func (e *Engine) StatusOf(table models.Table, now time.Time) TableStatus {
	current := now.Format(TimeLayout)
	today := e.reservations.Find(storedb.Where(
		storedb.Eq("tableId", storedb.String(table.ID)),
		storedb.Eq("reservationDate", storedb.String(now.Format(DateLayout))),
		storedb.Ne("status", storedb.String(models.ReservationCancelled)),
	))

	for _, rec := range today {
		if rec.Text("startTime") <= current && current < rec.Text("endTime") {
			return StatusOccupiedNow
		}
	}
	if len(today) > 0 {
		return StatusReservedToday
	}
	if table.IsAvailable {
		return StatusFree
	}
	return StatusUnavailable
}

// CheckWindow validates the booking policy for a requested window: the date
// must not be in the past, a same-day start must be later than the current
// time, the interval must be well-formed and at least MinDuration long, and
// both endpoints must fall within the operating window. The returned error
// carries the user-facing rejection reason; nil means bookable.
func CheckWindow(date, start, end string, now time.Time) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("invalid reservation date %q", date)
	}
	startMin, err := minutesOfDay(start)
	if err != nil {
		return err
	}
	endMin, err := minutesOfDay(end)
	if err != nil {
		return err
	}

	today := now.Format(DateLayout)
	if date < today {
		return errors.New("reservation date is in the past")
	}
	if date == today && start <= now.Format(TimeLayout) {
		return errors.New("start time must be later than the current time")
	}
	if start >= end {
		return errors.New("start time must be before end time")
	}
	if time.Duration(endMin-startMin)*time.Minute < MinDuration {
		return fmt.Errorf("reservation must be at least %d minutes", int(MinDuration.Minutes()))
	}
	if start < OpeningTime || end > ClosingTime {
		return fmt.Errorf("reservations are accepted between %s and %s", OpeningTime, ClosingTime)
	}
	return nil
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse(TimeLayout, hhmm)
	// Zero-padded HH:MM only, so that string order matches time order.
	if err != nil || t.Format(TimeLayout) != hhmm {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}
