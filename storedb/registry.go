package storedb

import (
	"fmt"
	"os"
)

// Registry is the fixed set of named collections the application addresses.
// It is built once at startup and handed to every component that needs a
// collection; persisted state lives entirely in the backing files.
type Registry struct {
	Waiters      *Collection
	Tables       *Collection
	Reservations *Collection
	Customers    *Collection
	MenuItems    *Collection
	Orders       *Collection
	Receipts     *Collection
}

// OpenRegistry opens every collection under dir, creating the directory when
// missing. Column types follow the entity field sets; undeclared fields load
// as strings.
func OpenRegistry(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	reg := &Registry{}
	for _, spec := range []struct {
		target **Collection
		name   string
		schema Schema
	}{
		{&reg.Waiters, "waiters", Schema{"isAdmin": FieldBool}},
		{&reg.Tables, "restaurantTables", Schema{"isAvailable": FieldBool}},
		{&reg.Reservations, "reservations", nil},
		{&reg.Customers, "customers", nil},
		{&reg.MenuItems, "menuItems", Schema{"price": FieldNumber}},
		{&reg.Orders, "orders", Schema{"dishes": FieldList}},
		{&reg.Receipts, "receipts", Schema{"amount": FieldNumber, "paid": FieldBool}},
	} {
		col, err := OpenCollection(dir, spec.name, spec.schema)
		if err != nil {
			return nil, fmt.Errorf("open collection %s: %w", spec.name, err)
		}
		*spec.target = col
	}
	return reg, nil
}
