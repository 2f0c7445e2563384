package controllers

import (
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/storedb"
)

const timestampLayout = "2006-01-02 15:04:05"

func byID(id string) storedb.Predicate {
	return storedb.Where(storedb.Eq("id", storedb.String(id)))
}

// upsertCustomer resolves a customer id by phone, the natural dedup key:
// an existing customer gets its name refreshed in place, a new one is
// inserted.
func upsertCustomer(reg *storedb.Registry, name, phone string) (string, error) {
	existing, found := reg.Customers.FindOne(storedb.Where(
		storedb.Eq("phone", storedb.String(phone))))
	if found {
		if _, err := reg.Customers.UpdateOne(byID(existing.ID()),
			storedb.NewRecord().Set("name", storedb.String(name))); err != nil {
			return "", err
		}
		return existing.ID(), nil
	}

	rec, err := reg.Customers.InsertOne(models.Customer{Name: name, Phone: phone}.Record())
	if err != nil {
		return "", err
	}
	return rec.ID(), nil
}

// customerName returns the display name for a customer id, blank when the
// reference dangles.
func customerName(reg *storedb.Registry, customerID string) string {
	rec, found := reg.Customers.FindOne(byID(customerID))
	if !found {
		return ""
	}
	return rec.Text("name")
}

// tableNumber returns the display number for a table id, blank when the
// reference dangles (orders may outlive their table).
func tableNumber(reg *storedb.Registry, tableID string) string {
	rec, found := reg.Tables.FindOne(byID(tableID))
	if !found {
		return ""
	}
	return rec.Text("tableNumber")
}
