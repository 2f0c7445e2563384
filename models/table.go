package models

import (
	"strconv"

	"github.com/yeremiapane/restaurant-floor/storedb"
)

type Table struct {
	ID          string `json:"id"`
	TableNumber string `json:"table_number"`
	Seats       int    `json:"seats"`
	IsAvailable bool   `json:"is_available"`
	// Status is advisory only; the authoritative display status is derived
	// by the scheduling engine from today's reservations.
	Status string `json:"status"`
}

func TableFromRecord(r *storedb.Record) Table {
	avail, _ := r.Get("isAvailable")
	seats, _ := strconv.Atoi(r.Text("seats"))
	return Table{
		ID:          r.ID(),
		TableNumber: r.Text("tableNumber"),
		Seats:       seats,
		IsAvailable: avail.IsTrue(),
		Status:      r.Text("status"),
	}
}

func (t Table) Record() *storedb.Record {
	return storedb.NewRecord().
		Set("tableNumber", storedb.String(t.TableNumber)).
		Set("seats", storedb.String(strconv.Itoa(t.Seats))).
		Set("isAvailable", storedb.Bool(t.IsAvailable)).
		Set("status", storedb.String(t.Status))
}
