package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/config"
	"github.com/pedidopronto/delivery-app/controllers"
	"github.com/pedidopronto/delivery-app/middlewares"
	"github.com/pedidopronto/delivery-app/services"
)

// SetupRouter wires every controller with an explicitly passed db handle.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddleware())

	couponSvc := services.NewCouponService(db)
	orderSvc := services.NewOrderService(db, couponSvc, services.NewStaticRouteProvider())
	if config.AppConfig != nil {
		orderSvc.StoreAddress = config.AppConfig.Store.Address
	}
	analyticsSvc := services.NewAnalyticsService(db)

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db, orderSvc)
	menuCtrl := controllers.NewMenuController(db)
	couponCtrl := controllers.NewCouponController(db, couponSvc)
	personCtrl := controllers.NewDeliveryPersonController(db)
	analyticsCtrl := controllers.NewAnalyticsController(db, analyticsSvc)
	exportCtrl := controllers.NewExportController(db)
	addressCtrl := controllers.NewAddressController(services.NewViaCEPClient())

	api := r.Group("/api/v1")

	// Public surface: the customer ordering form.
	api.POST("/auth/register", userCtrl.Register)
	api.POST("/auth/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
	api.GET("/menu", menuCtrl.GetAllMenuItems)
	api.GET("/menu/:item_id", menuCtrl.GetMenuItemByID)
	api.GET("/coupons/validate", couponCtrl.ValidateCoupon)
	api.GET("/address/:cep", addressCtrl.LookupCEP)
	api.POST("/orders", orderCtrl.CreateOrder)

	// Admin surface: kitchen/dispatch dashboard and back office.
	auth := api.Group("")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/auth/logout", userCtrl.Logout)

		staff := auth.Group("", middlewares.RequireRole("staff"))
		{
			staff.GET("/orders", orderCtrl.GetAllOrders)
			staff.GET("/orders/export", exportCtrl.ExportOrdersCSV)
			staff.GET("/orders/:order_id", orderCtrl.GetOrderByID)
			staff.PATCH("/orders/:order_id/take", orderCtrl.TakeOrder)
			staff.PATCH("/orders/:order_id/ready", orderCtrl.MarkReady)
			staff.PATCH("/orders/:order_id/assign-delivery", orderCtrl.AssignDelivery)
			staff.PATCH("/orders/:order_id/delivered", orderCtrl.MarkDelivered)
			staff.PATCH("/orders/:order_id/cancel", orderCtrl.CancelOrder)
			staff.PATCH("/orders/:order_id/paid", orderCtrl.MarkPaid)
			staff.POST("/orders/bulk-dispatch", orderCtrl.BulkDispatch)
			staff.GET("/ws/dispatch", controllers.DispatchSocketHandler)
		}

		admin := auth.Group("", middlewares.RequireRole())
		{
			admin.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)

			admin.POST("/menu", menuCtrl.CreateMenuItem)
			admin.PUT("/menu/:item_id", menuCtrl.UpdateMenuItem)
			admin.DELETE("/menu/:item_id", menuCtrl.DeleteMenuItem)

			admin.GET("/coupons", couponCtrl.GetAllCoupons)
			admin.POST("/coupons", couponCtrl.CreateCoupon)
			admin.PUT("/coupons/:coupon_id", couponCtrl.UpdateCoupon)

			admin.GET("/delivery-people", personCtrl.GetAllDeliveryPeople)
			admin.POST("/delivery-people", personCtrl.CreateDeliveryPerson)
			admin.PUT("/delivery-people/:person_id", personCtrl.UpdateDeliveryPerson)
			admin.DELETE("/delivery-people/:person_id", personCtrl.DeleteDeliveryPerson)

			admin.GET("/analytics/dashboard", analyticsCtrl.GetDashboard)
		}
	}

	return r
}
