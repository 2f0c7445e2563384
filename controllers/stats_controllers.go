package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/storedb"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type StatsController struct {
	Reg *storedb.Registry
}

func NewStatsController(reg *storedb.Registry) *StatsController {
	return &StatsController{Reg: reg}
}

type closedReceiptRow struct {
	Waiter string `json:"waiter"`
	Count  int    `json:"count"`
}

// ClosedReceipts -> per-waiter leaderboard of paid receipts, most closed
// first.
func (sc *StatsController) ClosedReceipts(c *gin.Context) {
	rows := sc.Reg.Receipts.Aggregate(storedb.Pipeline{
		storedb.Match(storedb.Where(
			storedb.Eq("paid", storedb.Bool(true)),
			storedb.Ne("closedBy", storedb.String("")),
		)),
		storedb.GroupCount("closedBy"),
		storedb.SortBy("count", true),
	})

	var stats []closedReceiptRow
	for _, rec := range rows {
		count, _ := rec.Get("count")
		stats = append(stats, closedReceiptRow{
			Waiter: rec.Text("_id"),
			Count:  int(count.Num()),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Closed receipts per waiter", stats)
}
