package models

import "github.com/yeremiapane/restaurant-floor/storedb"

const (
	OrderNew       = "new"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
	OrderPaid      = "paid"
)

// OrderStatuses lists the valid order states in lifecycle order.
var OrderStatuses = []string{OrderNew, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled, OrderPaid}

func ValidOrderStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Dish is one order line. Name and Price are copied from the menu item at
// order time, so later menu edits never rewrite historical orders.
type Dish struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	TableID     string `json:"table_id"`
	OrderDate   string `json:"order_date"`
	Dishes      []Dish `json:"dishes"`
	Status      string `json:"status"`
	WaiterLogin string `json:"waiter_login"`
}

// Amount is the order total: Σ price×quantity over its dish lines.
func (o Order) Amount() float64 {
	total := 0.0
	for _, d := range o.Dishes {
		total += d.Price * float64(d.Quantity)
	}
	return total
}

func OrderFromRecord(r *storedb.Record) Order {
	dishes, _ := r.Get("dishes")
	var lines []Dish
	for _, item := range dishes.Items() {
		price, _ := item.Get("price")
		qty, _ := item.Get("quantity")
		lines = append(lines, Dish{
			Name:     item.Text("name"),
			Price:    price.Num(),
			Quantity: int(qty.Num()),
		})
	}
	return Order{
		ID:          r.ID(),
		CustomerID:  r.Text("customerId"),
		TableID:     r.Text("tableId"),
		OrderDate:   r.Text("orderDate"),
		Dishes:      lines,
		Status:      r.Text("status"),
		WaiterLogin: r.Text("waiterLogin"),
	}
}

func (o Order) Record() *storedb.Record {
	return storedb.NewRecord().
		Set("customerId", storedb.String(o.CustomerID)).
		Set("tableId", storedb.String(o.TableID)).
		Set("orderDate", storedb.String(o.OrderDate)).
		Set("dishes", DishesValue(o.Dishes)).
		Set("status", storedb.String(o.Status)).
		Set("waiterLogin", storedb.String(o.WaiterLogin))
}

// DishesValue builds the list value for an order's dish lines.
func DishesValue(dishes []Dish) storedb.Value {
	items := make([]*storedb.Record, 0, len(dishes))
	for _, d := range dishes {
		items = append(items, storedb.NewRecord().
			Set("name", storedb.String(d.Name)).
			Set("price", storedb.Number(d.Price)).
			Set("quantity", storedb.Number(float64(d.Quantity))))
	}
	return storedb.List(items)
}
