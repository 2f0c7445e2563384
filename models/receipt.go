package models

import (
	"strings"

	"github.com/yeremiapane/restaurant-floor/storedb"
)

// Receipt is either a single-order receipt (OrderID set) or a consolidated
// one covering several orders (OrderIDs comma-joined, CustomerID set). The
// two variants carry different field sets; the store widens the collection
// header to hold both. Paid flips false→true exactly once, stamping
// PaymentDate and ClosedBy.
type Receipt struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id,omitempty"`
	OrderIDs    string  `json:"order_ids,omitempty"`
	CustomerID  string  `json:"customer_id,omitempty"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Paid        bool    `json:"paid"`
	WaiterLogin string  `json:"waiter_login"`
	PaymentDate string  `json:"payment_date,omitempty"`
	ClosedBy    string  `json:"closed_by,omitempty"`
}

// Consolidated reports whether the receipt covers multiple orders.
func (r Receipt) Consolidated() bool { return r.OrderIDs != "" }

// OrderIDList splits the comma-joined consolidated order ids.
func (r Receipt) OrderIDList() []string {
	if r.OrderIDs == "" {
		return nil
	}
	return strings.Split(r.OrderIDs, ",")
}

func ReceiptFromRecord(rec *storedb.Record) Receipt {
	amount, _ := rec.Get("amount")
	paid, _ := rec.Get("paid")
	return Receipt{
		ID:          rec.ID(),
		OrderID:     rec.Text("orderId"),
		OrderIDs:    rec.Text("orderIds"),
		CustomerID:  rec.Text("customerId"),
		Date:        rec.Text("date"),
		Amount:      amount.Num(),
		Paid:        paid.IsTrue(),
		WaiterLogin: rec.Text("waiterLogin"),
		PaymentDate: rec.Text("paymentDate"),
		ClosedBy:    rec.Text("closedBy"),
	}
}

func (r Receipt) Record() *storedb.Record {
	rec := storedb.NewRecord()
	if r.Consolidated() {
		rec.Set("orderIds", storedb.String(r.OrderIDs)).
			Set("customerId", storedb.String(r.CustomerID))
	} else {
		rec.Set("orderId", storedb.String(r.OrderID))
	}
	rec.Set("date", storedb.String(r.Date)).
		Set("amount", storedb.Number(r.Amount)).
		Set("paid", storedb.Bool(r.Paid)).
		Set("waiterLogin", storedb.String(r.WaiterLogin))
	if r.PaymentDate != "" {
		rec.Set("paymentDate", storedb.String(r.PaymentDate))
	}
	if r.ClosedBy != "" {
		rec.Set("closedBy", storedb.String(r.ClosedBy))
	}
	return rec
}
