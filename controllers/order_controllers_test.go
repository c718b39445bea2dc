package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/controllers"
	"github.com/pedidopronto/delivery-app/services"
)

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	couponSvc := services.NewCouponService(db)
	orderSvc := services.NewOrderService(db, couponSvc, services.NewStaticRouteProvider())
	orderCtrl := controllers.NewOrderController(db, orderSvc)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.PATCH("/orders/:order_id/take", orderCtrl.TakeOrder)
	r.PATCH("/orders/:order_id/delivered", orderCtrl.MarkDelivered)
	return r
}

func TestCreateAndGetOrder(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "X-Burger", 29.90)
	r := setupOrderRouter(db)

	payload := map[string]interface{}{
		"customer_name": "Maria",
		"address":       "Rua das Flores, 10",
		"payment_type":  "cash",
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID, "quantity": 2},
		},
	}
	w := doJSON(t, r, "POST", "/orders", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	assert.Equal(t, "Order created", resp["message"])
	data := resp["data"].(map[string]interface{})
	order := data["order"].(map[string]interface{})
	orderID := int(order["id"].(float64))
	assert.Equal(t, "pending", order["status"])
	assert.InDelta(t, 59.80, order["total_amount"].(float64), 0.001)

	w = doJSON(t, r, "GET", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	assert.Equal(t, "Order detail", resp["message"])
	got := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(orderID), got["id"].(float64))
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db)

	// Missing items.
	w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"customer_name": "Maria",
		"address":       "Rua A",
		"payment_type":  "cash",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown payment type.
	item := seedMenuItem(t, db, "X-Burger", 29.90)
	w = doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"customer_name": "Maria",
		"address":       "Rua A",
		"payment_type":  "cheque",
		"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransitionEndpointRejectsIllegalJump(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "X-Burger", 29.90)
	r := setupOrderRouter(db)

	w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
		"customer_name": "Maria",
		"address":       "Rua A",
		"payment_type":  "cash",
		"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	order := resp["data"].(map[string]interface{})["order"].(map[string]interface{})
	orderID := int(order["id"].(float64))

	w = doJSON(t, r, "PATCH", fmt.Sprintf("/orders/%d/delivered", orderID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, "PATCH", fmt.Sprintf("/orders/%d/take", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	got := resp["data"].(map[string]interface{})
	assert.Equal(t, "preparing", got["status"])
}

func TestGetAllOrdersFilterByStatus(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "X-Burger", 29.90)
	r := setupOrderRouter(db)

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, "POST", "/orders", map[string]interface{}{
			"customer_name": "Maria",
			"address":       "Rua A",
			"payment_type":  "cash",
			"items":         []map[string]interface{}{{"menu_item_id": item.ID, "quantity": 1}},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, "GET", "/orders?status=pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	orders := resp["data"].([]interface{})
	assert.Len(t, orders, 3)

	w = doJSON(t, r, "GET", "/orders?status=delivered", nil)
	resp = decodeResponse(t, w)
	assert.Empty(t, resp["data"])
}
