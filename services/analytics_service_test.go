package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/services"
)

func TestAnalyticsEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	as := services.NewAnalyticsService(db)

	period := services.LastDays(7, time.Now())
	report, err := as.Compute(period)

	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalOrders)
	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Equal(t, 0.0, report.AverageOrderValue)
	assert.Empty(t, report.OrdersByStatus)
	assert.Nil(t, report.AverageDeliveryMinutes)
	assert.Equal(t, 0, report.CouponUsage.Count)

	assert.Len(t, report.DailyRevenue, 7, "one zero bucket per day in range")
	for _, bucket := range report.DailyRevenue {
		assert.Equal(t, 0.0, bucket.Revenue)
	}
}

func TestAnalyticsAggregation(t *testing.T) {
	db := setupTestDB(t)
	as := services.NewAnalyticsService(db)
	now := time.Now()

	paid := models.PaymentStatusPaid
	pending := models.PaymentStatusPending

	seq := 0
	mk := func(status models.OrderStatus, payment models.PaymentStatus, total float64, created time.Time) models.Order {
		seq++
		order := models.Order{
			Reference:       fmt.Sprintf("order-%d", seq),
			CustomerName:    "Cliente",
			CustomerAddress: "Rua A",
			TotalAmount:     total,
			Status:          status,
			PaymentStatus:   payment,
			CreatedAt:       created,
			UpdatedAt:       created,
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatal(err)
		}
		return order
	}

	mk(models.StatusPending, pending, 30, now)
	mk(models.StatusPreparing, paid, 50, now)
	mk(models.StatusPreparing, paid, 70, now.AddDate(0, 0, -1))
	mk(models.StatusCancelled, paid, 999, now) // excluded entirely

	// Delivered 23 minutes after creation.
	delivered := mk(models.StatusDelivered, paid, 40, now.Add(-23*time.Minute))
	deliveredAt := delivered.CreatedAt.Add(23 * time.Minute)
	db.Model(&delivered).Updates(map[string]interface{}{"delivered_at": deliveredAt})

	// Coupon usage on one paid order.
	discount := 6.48
	withCoupon := mk(models.StatusDelivered, paid, 58.32, now.Add(-time.Hour))
	db.Model(&withCoupon).Updates(map[string]interface{}{
		"applied_coupon_discount": discount,
		"delivered_at":            withCoupon.CreatedAt.Add(23 * time.Minute),
	})

	report, err := as.Compute(services.LastDays(7, now))
	assert.NoError(t, err)

	assert.Equal(t, 5, report.TotalOrders, "cancelled orders are not counted")
	assert.InDelta(t, 30+50+70+40+58.32-30, report.TotalRevenue, 0.001, "revenue counts paid orders only")
	assert.InDelta(t, report.TotalRevenue/5, report.AverageOrderValue, 0.001)

	// Sparse statuses: no waiting_pickup or out_for_delivery entries.
	statuses := map[models.OrderStatus]int{}
	for _, sc := range report.OrdersByStatus {
		statuses[sc.Status] = sc.Count
	}
	assert.Equal(t, map[models.OrderStatus]int{
		models.StatusPending:   1,
		models.StatusPreparing: 2,
		models.StatusDelivered: 2,
	}, statuses)

	if assert.NotNil(t, report.AverageDeliveryMinutes) {
		assert.InDelta(t, 23.0, *report.AverageDeliveryMinutes, 0.01)
	}

	assert.Equal(t, 1, report.CouponUsage.Count)
	assert.InDelta(t, 6.48, report.CouponUsage.TotalDiscount, 0.001)

	assert.Len(t, report.DailyRevenue, 7)
	var dailySum float64
	for _, bucket := range report.DailyRevenue {
		dailySum += bucket.Revenue
	}
	assert.InDelta(t, report.TotalRevenue, dailySum, 0.001)
}

func TestAnalyticsPeriodBoundaries(t *testing.T) {
	db := setupTestDB(t)
	as := services.NewAnalyticsService(db)
	now := time.Now()

	old := models.Order{
		Reference:       "old-order",
		CustomerName:    "Cliente",
		CustomerAddress: "Rua A",
		TotalAmount:     100,
		Status:          models.StatusDelivered,
		PaymentStatus:   models.PaymentStatusPaid,
		CreatedAt:       now.AddDate(0, 0, -30),
		UpdatedAt:       now.AddDate(0, 0, -30),
	}
	assert.NoError(t, db.Create(&old).Error)

	report, err := as.Compute(services.LastDays(7, now))
	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalOrders, "orders outside the period are ignored")
}
