package models

import "github.com/yeremiapane/restaurant-floor/storedb"

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Ingredients string  `json:"ingredients"` // comma-joined
}

func MenuItemFromRecord(r *storedb.Record) MenuItem {
	price, _ := r.Get("price")
	return MenuItem{
		ID:          r.ID(),
		Name:        r.Text("name"),
		Description: r.Text("description"),
		Price:       price.Num(),
		Category:    r.Text("category"),
		Ingredients: r.Text("ingredients"),
	}
}

func (m MenuItem) Record() *storedb.Record {
	return storedb.NewRecord().
		Set("name", storedb.String(m.Name)).
		Set("description", storedb.String(m.Description)).
		Set("price", storedb.Number(m.Price)).
		Set("category", storedb.String(m.Category)).
		Set("ingredients", storedb.String(m.Ingredients))
}
