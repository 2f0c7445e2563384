package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/controllers"
	"github.com/yeremiapane/restaurant-floor/middlewares"
	"github.com/yeremiapane/restaurant-floor/scheduling"
	"github.com/yeremiapane/restaurant-floor/storedb"
)

func SetupRouter(reg *storedb.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	engine := scheduling.NewEngine(reg.Reservations)

	authCtrl := controllers.NewAuthController(reg)
	tableCtrl := controllers.NewTableController(reg, engine)
	resCtrl := controllers.NewReservationController(reg, engine)
	menuCtrl := controllers.NewMenuController(reg)
	orderCtrl := controllers.NewOrderController(reg)
	receiptCtrl := controllers.NewReceiptController(reg)
	statsCtrl := controllers.NewStatsController(reg)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/tables", tableCtrl.ListTables)
		api.GET("/tables/available", tableCtrl.AvailableTables)

		api.GET("/reservations", resCtrl.ListReservations)
		api.POST("/reservations", resCtrl.CreateReservation)
		api.PATCH("/reservations/:reservation_id", resCtrl.UpdateReservation)
		api.POST("/reservations/:reservation_id/cancel", resCtrl.CancelReservation)
		api.DELETE("/reservations/:reservation_id", resCtrl.DeleteReservation)

		api.GET("/menu", menuCtrl.ListMenu)

		api.GET("/orders", orderCtrl.ListOrders)
		api.POST("/orders", orderCtrl.CreateOrder)
		api.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
		api.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		api.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
		api.POST("/orders/:order_id/receipt", orderCtrl.CreateReceipt)

		api.GET("/receipts", receiptCtrl.ListReceipts)
		api.POST("/receipts/consolidated", receiptCtrl.CreateConsolidatedReceipt)
		api.POST("/receipts/:receipt_id/pay", receiptCtrl.PayReceipt)

		api.GET("/stats/closed-receipts", statsCtrl.ClosedReceipts)
	}

	admin := api.Group("/")
	admin.Use(middlewares.AdminOnly())
	{
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		admin.PATCH("/tables/:table_id/availability", tableCtrl.ToggleAvailability)

		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:item_id", menuCtrl.DeleteMenuItem)
	}

	return r
}
