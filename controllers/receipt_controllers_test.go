package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/storedb"
)

func createOrder(t *testing.T, r *gin.Engine, token, tableID, menuItemID string, qty int) models.Order {
	t.Helper()
	code, resp := do(t, r, http.MethodPost, "/orders", token, orderBody(tableID,
		gin.H{"menu_item_id": menuItemID, "quantity": qty}))
	require.Equal(t, http.StatusCreated, code)
	var order models.Order
	decodeData(t, resp, &order)
	return order
}

func TestSingleReceiptPayOnce(t *testing.T) {
	r, reg := newServer(t)
	token := loginAs(t, r, "alice")
	tableID := seedTable(t, reg, "1")
	soupID := seedMenuItem(t, reg, "Soup", 5.50)

	order := createOrder(t, r, token, tableID, soupID, 2)

	code, resp := do(t, r, http.MethodPost, "/orders/"+order.ID+"/receipt", token, nil)
	require.Equal(t, http.StatusCreated, code)
	var receipt models.Receipt
	decodeData(t, resp, &receipt)
	assert.Equal(t, order.ID, receipt.OrderID)
	assert.InDelta(t, 11.0, receipt.Amount, 1e-9)
	assert.False(t, receipt.Paid)

	// One receipt per order.
	code, _ = do(t, r, http.MethodPost, "/orders/"+order.ID+"/receipt", token, nil)
	assert.Equal(t, http.StatusConflict, code)

	// The receipted order is frozen even while unpaid.
	code, _ = do(t, r, http.MethodPatch, "/orders/"+order.ID, token, orderBody(tableID,
		gin.H{"menu_item_id": soupID, "quantity": 5}))
	assert.Equal(t, http.StatusConflict, code)

	code, resp = do(t, r, http.MethodPost, "/receipts/"+receipt.ID+"/pay", token, nil)
	require.Equal(t, http.StatusOK, code)
	decodeData(t, resp, &receipt)
	assert.True(t, receipt.Paid)
	assert.Equal(t, "alice", receipt.ClosedBy)
	assert.NotEmpty(t, receipt.PaymentDate)

	// Payment cascades to the order.
	rec, found := reg.Orders.FindOne(storedb.Where(
		storedb.Eq("id", storedb.String(order.ID))))
	require.True(t, found)
	assert.Equal(t, models.OrderPaid, rec.Text("status"))

	code, _ = do(t, r, http.MethodPost, "/receipts/"+receipt.ID+"/pay", token, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, r, http.MethodPost, "/receipts/999/pay", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestConsolidatedReceiptFlow(t *testing.T) {
	r, reg := newServer(t)
	token := loginAs(t, r, "alice")
	tableID := seedTable(t, reg, "1")
	soupID := seedMenuItem(t, reg, "Soup", 5)
	steakID := seedMenuItem(t, reg, "Steak", 20)

	first := createOrder(t, r, token, tableID, soupID, 2)
	second := createOrder(t, r, token, tableID, steakID, 1)
	require.Equal(t, first.CustomerID, second.CustomerID)

	code, resp := do(t, r, http.MethodPost, "/receipts/consolidated", token,
		gin.H{"customer_id": first.CustomerID})
	require.Equal(t, http.StatusCreated, code)
	var receipt models.Receipt
	decodeData(t, resp, &receipt)
	assert.True(t, receipt.Consolidated())
	assert.ElementsMatch(t, []string{first.ID, second.ID}, receipt.OrderIDList())
	assert.InDelta(t, 30.0, receipt.Amount, 1e-9)

	// Same covered set again.
	code, _ = do(t, r, http.MethodPost, "/receipts/consolidated", token,
		gin.H{"customer_id": first.CustomerID})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, r, http.MethodPost, "/receipts/"+receipt.ID+"/pay", token, nil)
	require.Equal(t, http.StatusOK, code)

	// Every covered order got status=paid.
	for _, id := range []string{first.ID, second.ID} {
		rec, found := reg.Orders.FindOne(storedb.Where(
			storedb.Eq("id", storedb.String(id))))
		require.True(t, found)
		assert.Equal(t, models.OrderPaid, rec.Text("status"))
	}

	// Nothing left to consolidate.
	code, _ = do(t, r, http.MethodPost, "/receipts/consolidated", token,
		gin.H{"customer_id": first.CustomerID})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, r, http.MethodPost, "/receipts/consolidated", token,
		gin.H{"customer_id": "999"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListReceiptsResolvesCustomer(t *testing.T) {
	r, reg := newServer(t)
	token := loginAs(t, r, "alice")
	tableID := seedTable(t, reg, "1")
	soupID := seedMenuItem(t, reg, "Soup", 5)

	order := createOrder(t, r, token, tableID, soupID, 1)
	code, _ := do(t, r, http.MethodPost, "/orders/"+order.ID+"/receipt", token, nil)
	require.Equal(t, http.StatusCreated, code)

	code, resp := do(t, r, http.MethodGet, "/receipts", token, nil)
	require.Equal(t, http.StatusOK, code)
	var views []struct {
		models.Receipt
		CustomerName string `json:"customer_name"`
	}
	decodeData(t, resp, &views)
	require.Len(t, views, 1)
	// Single receipts reach the customer through their order.
	assert.Equal(t, "Ivan", views[0].CustomerName)
}

func TestClosedReceiptsLeaderboard(t *testing.T) {
	r, reg := newServer(t)
	alice := loginAs(t, r, "alice")
	bob := loginAs(t, r, "bobby")
	tableID := seedTable(t, reg, "1")
	soupID := seedMenuItem(t, reg, "Soup", 5)

	payAs := func(token string) {
		order := createOrder(t, r, token, tableID, soupID, 1)
		code, resp := do(t, r, http.MethodPost, "/orders/"+order.ID+"/receipt", token, nil)
		require.Equal(t, http.StatusCreated, code)
		var receipt models.Receipt
		decodeData(t, resp, &receipt)
		code, _ = do(t, r, http.MethodPost, "/receipts/"+receipt.ID+"/pay", token, nil)
		require.Equal(t, http.StatusOK, code)
	}
	payAs(alice)
	payAs(alice)
	payAs(bob)

	// An unpaid receipt does not count.
	open := createOrder(t, r, bob, tableID, soupID, 1)
	code, _ := do(t, r, http.MethodPost, "/orders/"+open.ID+"/receipt", bob, nil)
	require.Equal(t, http.StatusCreated, code)

	code, resp := do(t, r, http.MethodGet, "/stats/closed-receipts", alice, nil)
	require.Equal(t, http.StatusOK, code)
	var rows []struct {
		Waiter string `json:"waiter"`
		Count  int    `json:"count"`
	}
	decodeData(t, resp, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].Waiter)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, "bobby", rows[1].Waiter)
	assert.Equal(t, 1, rows[1].Count)
}
