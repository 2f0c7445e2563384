package models

import "github.com/yeremiapane/restaurant-floor/storedb"

// Customer is deduplicated by phone number: booking or ordering under an
// existing phone updates the stored name instead of creating a duplicate.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func CustomerFromRecord(r *storedb.Record) Customer {
	return Customer{
		ID:    r.ID(),
		Name:  r.Text("name"),
		Phone: r.Text("phone"),
	}
}

func (c Customer) Record() *storedb.Record {
	return storedb.NewRecord().
		Set("name", storedb.String(c.Name)).
		Set("phone", storedb.String(c.Phone))
}
