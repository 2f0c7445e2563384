package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/storedb"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type ReceiptController struct {
	Reg *storedb.Registry
}

func NewReceiptController(reg *storedb.Registry) *ReceiptController {
	return &ReceiptController{Reg: reg}
}

type receiptView struct {
	models.Receipt
	CustomerName string `json:"customer_name"`
}

// ListReceipts -> all receipts with the customer resolved through the order
// (single receipts) or directly (consolidated ones).
func (rc *ReceiptController) ListReceipts(c *gin.Context) {
	var views []receiptView
	for _, rec := range rc.Reg.Receipts.Find() {
		receipt := models.ReceiptFromRecord(rec)
		view := receiptView{Receipt: receipt}
		customerID := receipt.CustomerID
		if customerID == "" && receipt.OrderID != "" {
			if order, found := rc.Reg.Orders.FindOne(byID(receipt.OrderID)); found {
				customerID = order.Text("customerId")
			}
		}
		view.CustomerName = customerName(rc.Reg, customerID)
		views = append(views, view)
	}
	utils.RespondJSON(c, http.StatusOK, "List of receipts", views)
}

// CreateConsolidatedReceipt -> one receipt covering every unpaid order of a
// customer, referenced by the comma-joined order id list.
func (rc *ReceiptController) CreateConsolidatedReceipt(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, found := rc.Reg.Customers.FindOne(byID(req.CustomerID)); !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer not found"))
		return
	}

	orders := rc.Reg.Orders.Find(storedb.Where(
		storedb.Eq("customerId", storedb.String(req.CustomerID)),
		storedb.Ne("status", storedb.String(models.OrderPaid)),
	))
	if len(orders) == 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("customer has no unpaid orders"))
		return
	}

	ids := make([]string, 0, len(orders))
	amount := 0.0
	for _, rec := range orders {
		order := models.OrderFromRecord(rec)
		ids = append(ids, order.ID)
		amount += order.Amount()
	}
	joined := strings.Join(ids, ",")

	if _, exists := rc.Reg.Receipts.FindOne(storedb.Where(
		storedb.Eq("orderIds", storedb.String(joined)))); exists {
		utils.RespondError(c, http.StatusConflict, errors.New("consolidated receipt already created"))
		return
	}

	receipt, err := rc.Reg.Receipts.InsertOne(models.Receipt{
		OrderIDs:    joined,
		CustomerID:  req.CustomerID,
		Date:        time.Now().Format(timestampLayout),
		Amount:      amount,
		Paid:        false,
		WaiterLogin: models.OrderFromRecord(orders[0]).WaiterLogin,
	}.Record())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Consolidated receipt %s created for customer %s (%d orders, amount=%.2f)",
		receipt.ID(), req.CustomerID, len(ids), amount)
	utils.RespondJSON(c, http.StatusCreated, "Consolidated receipt created", models.ReceiptFromRecord(receipt))
}

// PayReceipt -> settle a receipt exactly once: flips paid, stamps the
// payment date and the closing waiter, and cascades status=paid to the
// covered order(s).
func (rc *ReceiptController) PayReceipt(c *gin.Context) {
	receiptID := c.Param("receipt_id")

	rec, found := rc.Reg.Receipts.FindOne(byID(receiptID))
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("receipt not found"))
		return
	}
	receipt := models.ReceiptFromRecord(rec)
	if receipt.Paid {
		utils.RespondError(c, http.StatusConflict, errors.New("receipt already paid"))
		return
	}

	closedBy := c.GetString("waiterLogin")
	updated, err := rc.Reg.Receipts.UpdateOne(byID(receiptID), storedb.NewRecord().
		Set("paid", storedb.Bool(true)).
		Set("paymentDate", storedb.String(time.Now().Format(timestampLayout))).
		Set("closedBy", storedb.String(closedBy)))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	paidStatus := storedb.NewRecord().Set("status", storedb.String(models.OrderPaid))
	if receipt.Consolidated() {
		ids := receipt.OrderIDList()
		values := make([]storedb.Value, len(ids))
		for i, id := range ids {
			values[i] = storedb.String(id)
		}
		if _, err := rc.Reg.Orders.UpdateMany(storedb.Where(
			storedb.In("id", values...)), paidStatus); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	} else if receipt.OrderID != "" {
		if _, err := rc.Reg.Orders.UpdateOne(byID(receipt.OrderID), paidStatus); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.InfoLogger.Printf("Receipt %s paid, closed by %s", receiptID, closedBy)
	utils.RespondJSON(c, http.StatusOK, "Receipt paid", models.ReceiptFromRecord(updated))
}
