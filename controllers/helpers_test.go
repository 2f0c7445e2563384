package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/router"
	"github.com/yeremiapane/restaurant-floor/storedb"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newServer(t *testing.T) (*gin.Engine, *storedb.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg, err := storedb.OpenRegistry(t.TempDir())
	require.NoError(t, err)
	return router.SetupRouter(reg), reg
}

// do performs one request against the router and decodes the JSON envelope.
func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w.Code, resp
}

func decodeData(t *testing.T, resp apiResponse, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

// loginAs registers a fresh waiter and returns its token.
func loginAs(t *testing.T, r *gin.Engine, login string) string {
	t.Helper()
	code, _ := do(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"login":            login,
		"password":         "secret1234",
		"confirm_password": "secret1234",
	})
	require.Equal(t, http.StatusCreated, code)
	return loginExisting(t, r, login, "secret1234")
}

func loginExisting(t *testing.T, r *gin.Engine, login, password string) string {
	t.Helper()
	code, resp := do(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"login":    login,
		"password": password,
	})
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"is_admin"`
	}
	decodeData(t, resp, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

// loginAsAdmin seeds an admin waiter straight into the store, since the
// register endpoint never grants the flag, and returns its token.
func loginAsAdmin(t *testing.T, r *gin.Engine, reg *storedb.Registry) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("adminpass1"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = reg.Waiters.InsertOne(models.Waiter{
		Login:    "boss",
		Password: string(hashed),
		IsAdmin:  true,
	}.Record())
	require.NoError(t, err)
	return loginExisting(t, r, "boss", "adminpass1")
}

func seedTable(t *testing.T, reg *storedb.Registry, number string) string {
	t.Helper()
	rec, err := reg.Tables.InsertOne(models.Table{
		TableNumber: number,
		Seats:       4,
		IsAvailable: true,
		Status:      "free",
	}.Record())
	require.NoError(t, err)
	return rec.ID()
}

func seedMenuItem(t *testing.T, reg *storedb.Registry, name string, price float64) string {
	t.Helper()
	rec, err := reg.MenuItems.InsertOne(models.MenuItem{
		Name:     name,
		Price:    price,
		Category: "main",
	}.Record())
	require.NoError(t, err)
	return rec.ID()
}

func reservationBody(tableID, date, start, end string) gin.H {
	return gin.H{
		"customer_name":  "Ivan",
		"customer_phone": "+79990001122",
		"table_id":       tableID,
		"date":           date,
		"start_time":     start,
		"end_time":       end,
	}
}

func orderBody(tableID string, items ...gin.H) gin.H {
	return gin.H{
		"customer_name":  "Ivan",
		"customer_phone": "+79990001122",
		"table_id":       tableID,
		"items":          items,
	}
}
