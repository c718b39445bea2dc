package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pedidopronto/delivery-app/controllers"
	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/services"
)

func TestValidateCouponEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := gin.New()
	couponCtrl := controllers.NewCouponController(db, services.NewCouponService(db))
	r.GET("/coupons/validate", couponCtrl.ValidateCoupon)

	now := time.Now()
	assert.NoError(t, db.Create(&models.Coupon{
		Code: "DEZ", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		IsActive: true, MinOrderAmount: floatPtr(50), CreatedAt: now, UpdatedAt: now,
	}).Error)

	w := doJSON(t, r, "GET", "/coupons/validate?code=DEZ&subtotal=64.80", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])

	// Below minimum: still 200, with a machine-readable reason.
	w = doJSON(t, r, "GET", "/coupons/validate?code=DEZ&subtotal=30", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["valid"])
	assert.Equal(t, "below_minimum", data["reason"])

	w = doJSON(t, r, "GET", "/coupons/validate?code=NADA&subtotal=30", nil)
	resp = decodeResponse(t, w)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, "not_found", data["reason"])
}

func TestCreateCouponValidation(t *testing.T) {
	db := setupTestDB(t)
	r := gin.New()
	couponCtrl := controllers.NewCouponController(db, services.NewCouponService(db))
	r.POST("/coupons", couponCtrl.CreateCoupon)

	w := doJSON(t, r, "POST", "/coupons", map[string]interface{}{
		"code":           "DEZ",
		"discount_type":  "percentage",
		"discount_value": 10,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Percentage above 100 is rejected before persistence.
	w = doJSON(t, r, "POST", "/coupons", map[string]interface{}{
		"code":           "MUITO",
		"discount_type":  "percentage",
		"discount_value": 150,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Coupon{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func floatPtr(f float64) *float64 { return &f }
