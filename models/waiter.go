package models

import "github.com/yeremiapane/restaurant-floor/storedb"

type Waiter struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	Password string `json:"-"` // bcrypt hash
	IsAdmin  bool   `json:"is_admin"`
}

func WaiterFromRecord(r *storedb.Record) Waiter {
	isAdmin, _ := r.Get("isAdmin")
	return Waiter{
		ID:       r.ID(),
		Login:    r.Text("login"),
		Password: r.Text("password"),
		IsAdmin:  isAdmin.IsTrue(),
	}
}

func (w Waiter) Record() *storedb.Record {
	return storedb.NewRecord().
		Set("login", storedb.String(w.Login)).
		Set("password", storedb.String(w.Password)).
		Set("isAdmin", storedb.Bool(w.IsAdmin))
}
