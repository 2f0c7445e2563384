package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/scheduling"
	"github.com/yeremiapane/restaurant-floor/storedb"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type TableController struct {
	Reg    *storedb.Registry
	Engine *scheduling.Engine
}

func NewTableController(reg *storedb.Registry, engine *scheduling.Engine) *TableController {
	return &TableController{Reg: reg, Engine: engine}
}

type tableView struct {
	models.Table
	// Derived status overrides the advisory one stored on the record.
	Status scheduling.TableStatus `json:"status"`
}

// ListTables -> all tables with their derived status as of now.
func (tc *TableController) ListTables(c *gin.Context) {
	now := time.Now()
	var views []tableView
	for _, rec := range tc.Reg.Tables.Find() {
		table := models.TableFromRecord(rec)
		views = append(views, tableView{
			Table:  table,
			Status: tc.Engine.StatusOf(table, now),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", views)
}

// AvailableTables -> tables free for the requested window, the booking-form
// source. Query params: date, start, end.
func (tc *TableController) AvailableTables(c *gin.Context) {
	date := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")
	if date == "" || start == "" || end == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date, start and end are required"))
		return
	}
	if start >= end {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start time must be before end time"))
		return
	}

	var free []models.Table
	for _, rec := range tc.Reg.Tables.Find(storedb.Where(
		storedb.Eq("isAvailable", storedb.Bool(true)))) {
		table := models.TableFromRecord(rec)
		if tc.Engine.Available(table.ID, date, start, end, "") {
			free = append(free, table)
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", free)
}

// CreateTable -> add a table (admin only).
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber int `json:"table_number" binding:"required,min=1"`
		Seats       int `json:"seats" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	number := strconv.Itoa(req.TableNumber)
	if _, exists := tc.Reg.Tables.FindOne(storedb.Where(
		storedb.Eq("tableNumber", storedb.String(number)))); exists {
		utils.RespondError(c, http.StatusConflict, errors.New("table already exists"))
		return
	}

	rec, err := tc.Reg.Tables.InsertOne(models.Table{
		TableNumber: number,
		Seats:       req.Seats,
		IsAvailable: true,
		Status:      "free",
	}.Record())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (seats=%d)", number, req.Seats)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", models.TableFromRecord(rec))
}

// DeleteTable -> remove a table and cascade-delete its reservations (admin
// only). Orders and receipts referencing the table are left untouched.
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")

	rec, err := tc.Reg.Tables.DeleteOne(byID(tableID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	removed, err := tc.Reg.Reservations.DeleteMany(storedb.Where(
		storedb.Eq("tableId", storedb.String(tableID))))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %s deleted, %d reservations removed", tableID, removed)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"reservations_removed": removed,
	})
}

// ToggleAvailability -> flip the table's availability flag (admin only).
func (tc *TableController) ToggleAvailability(c *gin.Context) {
	tableID := c.Param("table_id")

	rec, found := tc.Reg.Tables.FindOne(byID(tableID))
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	next := !models.TableFromRecord(rec).IsAvailable

	updated, err := tc.Reg.Tables.UpdateOne(byID(tableID),
		storedb.NewRecord().Set("isAvailable", storedb.Bool(next)))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %s availability set to %t", tableID, next)
	utils.RespondJSON(c, http.StatusOK, "Table availability updated", models.TableFromRecord(updated))
}
