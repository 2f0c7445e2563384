package models

import "github.com/yeremiapane/restaurant-floor/storedb"

const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation holds a half-open interval [StartTime, EndTime) on one date.
// Dates are YYYY-MM-DD and times zero-padded HH:MM, so the store's
// lexicographic range comparisons are chronological for them.
type Reservation struct {
	ID         string `json:"id"`
	TableID    string `json:"table_id"`
	CustomerID string `json:"customer_id"`
	Date       string `json:"reservation_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Status     string `json:"status"`
}

func ReservationFromRecord(r *storedb.Record) Reservation {
	return Reservation{
		ID:         r.ID(),
		TableID:    r.Text("tableId"),
		CustomerID: r.Text("customerId"),
		Date:       r.Text("reservationDate"),
		StartTime:  r.Text("startTime"),
		EndTime:    r.Text("endTime"),
		Status:     r.Text("status"),
	}
}

func (res Reservation) Record() *storedb.Record {
	return storedb.NewRecord().
		Set("tableId", storedb.String(res.TableID)).
		Set("customerId", storedb.String(res.CustomerID)).
		Set("reservationDate", storedb.String(res.Date)).
		Set("startTime", storedb.String(res.StartTime)).
		Set("endTime", storedb.String(res.EndTime)).
		Set("status", storedb.String(res.Status))
}
