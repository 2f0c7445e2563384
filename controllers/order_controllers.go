package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/storedb"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type OrderController struct {
	Reg *storedb.Registry
}

func NewOrderController(reg *storedb.Registry) *OrderController {
	return &OrderController{Reg: reg}
}

type orderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	TableID       string `json:"table_id" binding:"required"`
	Items         []struct {
		MenuItemID string `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
}

type orderView struct {
	models.Order
	CustomerName string `json:"customer_name"`
	TableNumber  string `json:"table_number"`
}

// resolveDishes copies name and price from the menu at order time; the order
// keeps those values even when the menu changes later.
func (oc *OrderController) resolveDishes(req orderRequest) ([]models.Dish, error) {
	dishes := make([]models.Dish, 0, len(req.Items))
	for _, item := range req.Items {
		rec, found := oc.Reg.MenuItems.FindOne(byID(item.MenuItemID))
		if !found {
			return nil, fmt.Errorf("menu item %s not found", item.MenuItemID)
		}
		menuItem := models.MenuItemFromRecord(rec)
		dishes = append(dishes, models.Dish{
			Name:     menuItem.Name,
			Price:    menuItem.Price,
			Quantity: item.Quantity,
		})
	}
	return dishes, nil
}

// ListOrders -> all orders with display data; dangling customer or table
// references render blank.
func (oc *OrderController) ListOrders(c *gin.Context) {
	var views []orderView
	for _, rec := range oc.Reg.Orders.Find() {
		order := models.OrderFromRecord(rec)
		views = append(views, orderView{
			Order:        order,
			CustomerName: customerName(oc.Reg, order.CustomerID),
			TableNumber:  tableNumber(oc.Reg, order.TableID),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", views)
}

// CreateOrder -> open a new order for a table.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, found := oc.Reg.Tables.FindOne(byID(req.TableID)); !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	dishes, err := oc.resolveDishes(req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	customerID, err := upsertCustomer(oc.Reg, req.CustomerName, req.CustomerPhone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rec, err := oc.Reg.Orders.InsertOne(models.Order{
		CustomerID:  customerID,
		TableID:     req.TableID,
		OrderDate:   time.Now().Format(timestampLayout),
		Dishes:      dishes,
		Status:      models.OrderNew,
		WaiterLogin: c.GetString("waiterLogin"),
	}.Record())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created for table %s (%d dishes)", rec.ID(), req.TableID, len(dishes))
	utils.RespondJSON(c, http.StatusCreated, "Order created", models.OrderFromRecord(rec))
}

// UpdateOrder -> edit customer, table and dish lines. Paid or cancelled
// orders, and orders that already have a receipt, are immutable.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	rec, found := oc.Reg.Orders.FindOne(byID(orderID))
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	order := models.OrderFromRecord(rec)
	if order.Status == models.OrderCancelled || order.Status == models.OrderPaid {
		utils.RespondError(c, http.StatusConflict, errors.New("cannot edit a cancelled or paid order"))
		return
	}
	if _, receipted := oc.Reg.Receipts.FindOne(storedb.Where(
		storedb.Eq("orderId", storedb.String(orderID)))); receipted {
		utils.RespondError(c, http.StatusConflict, errors.New("cannot edit an order that already has a receipt"))
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	dishes, err := oc.resolveDishes(req)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	customerID, err := upsertCustomer(oc.Reg, req.CustomerName, req.CustomerPhone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	updated, err := oc.Reg.Orders.UpdateOne(byID(orderID), storedb.NewRecord().
		Set("customerId", storedb.String(customerID)).
		Set("tableId", storedb.String(req.TableID)).
		Set("dishes", models.DishesValue(dishes)))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s updated", orderID)
	utils.RespondJSON(c, http.StatusOK, "Order updated", models.OrderFromRecord(updated))
}

// UpdateOrderStatus -> move the order through its lifecycle.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", req.Status))
		return
	}

	updated, err := oc.Reg.Orders.UpdateOne(byID(orderID),
		storedb.NewRecord().Set("status", storedb.String(req.Status)))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if updated == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.InfoLogger.Printf("Order %s status changed to %s", orderID, req.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", models.OrderFromRecord(updated))
}

// DeleteOrder -> remove the order and any receipt issued for it.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	if _, err := oc.Reg.Receipts.DeleteMany(storedb.Where(
		storedb.Eq("orderId", storedb.String(orderID)))); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rec, err := oc.Reg.Orders.DeleteOne(byID(orderID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.InfoLogger.Printf("Order %s deleted", orderID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", nil)
}

// CreateReceipt -> issue the single-order receipt; at most one may exist per
// order.
func (oc *OrderController) CreateReceipt(c *gin.Context) {
	orderID := c.Param("order_id")

	rec, found := oc.Reg.Orders.FindOne(byID(orderID))
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	order := models.OrderFromRecord(rec)

	if _, exists := oc.Reg.Receipts.FindOne(storedb.Where(
		storedb.Eq("orderId", storedb.String(orderID)))); exists {
		utils.RespondError(c, http.StatusConflict, errors.New("receipt already issued for this order"))
		return
	}

	receipt, err := oc.Reg.Receipts.InsertOne(models.Receipt{
		OrderID:     orderID,
		Date:        time.Now().Format(timestampLayout),
		Amount:      order.Amount(),
		Paid:        false,
		WaiterLogin: order.WaiterLogin,
	}.Record())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Receipt %s issued for order %s (amount=%.2f)", receipt.ID(), orderID, order.Amount())
	utils.RespondJSON(c, http.StatusCreated, "Receipt issued", models.ReceiptFromRecord(receipt))
}
