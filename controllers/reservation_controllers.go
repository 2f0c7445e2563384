package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/scheduling"
	"github.com/yeremiapane/restaurant-floor/storedb"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type ReservationController struct {
	Reg    *storedb.Registry
	Engine *scheduling.Engine
}

func NewReservationController(reg *storedb.Registry, engine *scheduling.Engine) *ReservationController {
	return &ReservationController{Reg: reg, Engine: engine}
}

type reservationRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	TableID       string `json:"table_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
}

type reservationView struct {
	models.Reservation
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	TableNumber   string `json:"table_number"`
}

// ListReservations -> all reservations with customer and table display data.
// Dangling references render blank instead of failing.
func (rc *ReservationController) ListReservations(c *gin.Context) {
	var views []reservationView
	for _, rec := range rc.Reg.Reservations.Find() {
		res := models.ReservationFromRecord(rec)
		view := reservationView{
			Reservation: res,
			TableNumber: tableNumber(rc.Reg, res.TableID),
		}
		if cust, found := rc.Reg.Customers.FindOne(byID(res.CustomerID)); found {
			view.CustomerName = cust.Text("name")
			view.CustomerPhone = cust.Text("phone")
		}
		views = append(views, view)
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", views)
}

// CreateReservation -> book a table. Policy checks and the overlap check run
// before any store write, so a rejection leaves no partial state.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, found := rc.Reg.Tables.FindOne(byID(req.TableID)); !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	if err := scheduling.CheckWindow(req.Date, req.StartTime, req.EndTime, time.Now()); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !rc.Engine.Available(req.TableID, req.Date, req.StartTime, req.EndTime, "") {
		utils.RespondError(c, http.StatusConflict, errors.New("table is already reserved for this time"))
		return
	}

	customerID, err := upsertCustomer(rc.Reg, req.CustomerName, req.CustomerPhone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rec, err := rc.Reg.Reservations.InsertOne(models.Reservation{
		TableID:    req.TableID,
		CustomerID: customerID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     models.ReservationConfirmed,
	}.Record())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %s created: table %s on %s %s-%s",
		rec.ID(), req.TableID, req.Date, req.StartTime, req.EndTime)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", models.ReservationFromRecord(rec))
}

// UpdateReservation -> edit in place. The overlap check excludes the
// reservation being edited; saving re-confirms a cancelled one.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	resID := c.Param("reservation_id")

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, found := rc.Reg.Reservations.FindOne(byID(resID)); !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}
	if err := scheduling.CheckWindow(req.Date, req.StartTime, req.EndTime, time.Now()); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !rc.Engine.Available(req.TableID, req.Date, req.StartTime, req.EndTime, resID) {
		utils.RespondError(c, http.StatusConflict, errors.New("table is already reserved for this time"))
		return
	}

	customerID, err := upsertCustomer(rc.Reg, req.CustomerName, req.CustomerPhone)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	updated, err := rc.Reg.Reservations.UpdateOne(byID(resID), models.Reservation{
		TableID:    req.TableID,
		CustomerID: customerID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     models.ReservationConfirmed,
	}.Record())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %s updated", resID)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", models.ReservationFromRecord(updated))
}

// CancelReservation -> soft-cancel, retained for history.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	resID := c.Param("reservation_id")

	updated, err := rc.Reg.Reservations.UpdateOne(byID(resID),
		storedb.NewRecord().Set("status", storedb.String(models.ReservationCancelled)))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if updated == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}

	utils.InfoLogger.Printf("Reservation %s cancelled", resID)
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", models.ReservationFromRecord(updated))
}

// DeleteReservation -> hard delete.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	resID := c.Param("reservation_id")

	rec, err := rc.Reg.Reservations.DeleteOne(byID(resID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}

	utils.InfoLogger.Printf("Reservation %s deleted", resID)
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", nil)
}
