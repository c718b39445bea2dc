package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/models"
)

// Period is a half-open [From, To) aggregation window in local time.
type Period struct {
	From time.Time
	To   time.Time
}

// LastDays builds a period covering the last n local calendar days,
// today included.
func LastDays(n int, now time.Time) Period {
	end := startOfDay(now).AddDate(0, 0, 1)
	return Period{From: end.AddDate(0, 0, -n), To: end}
}

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Label  string             `json:"label"`
	Count  int                `json:"count"`
}

type DailyRevenue struct {
	Date    string  `json:"date"` // 2006-01-02
	Revenue float64 `json:"revenue"`
}

type CouponUsage struct {
	Count         int     `json:"count"`
	TotalDiscount float64 `json:"total_discount"`
}

type AnalyticsReport struct {
	TotalOrders            int            `json:"total_orders"`
	TotalRevenue           float64        `json:"total_revenue"`
	AverageOrderValue      float64        `json:"average_order_value"`
	OrdersByStatus         []StatusCount  `json:"orders_by_status"`
	DailyRevenue           []DailyRevenue `json:"daily_revenue"`
	AverageDeliveryMinutes *float64       `json:"average_delivery_minutes,omitempty"`
	CouponUsage            CouponUsage    `json:"coupon_usage"`
}

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// statusOrder fixes the display order of the status series.
var statusOrder = []models.OrderStatus{
	models.StatusPending,
	models.StatusPreparing,
	models.StatusWaitingPickup,
	models.StatusOutForDelivery,
	models.StatusDelivered,
}

// Compute aggregates the orders created inside the period. Cancelled orders
// are excluded from counts and revenue; revenue only counts paid orders.
// An empty store yields a well-defined zero report, never an error.
func (as *AnalyticsService) Compute(period Period) (*AnalyticsReport, error) {
	var orders []models.Order
	err := as.DB.
		Where("created_at >= ? AND created_at < ?", period.From, period.To).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	report := &AnalyticsReport{}

	// Pre-seed one zero bucket per local calendar day in range.
	buckets := make(map[string]float64)
	var bucketKeys []string
	for day := startOfDay(period.From); day.Before(period.To); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		buckets[key] = 0
		bucketKeys = append(bucketKeys, key)
	}

	statusCounts := make(map[models.OrderStatus]int)
	var deliveredCount int
	var deliveryMinutes float64

	for _, o := range orders {
		if o.Status == models.StatusCancelled {
			continue
		}
		report.TotalOrders++
		statusCounts[o.Status]++

		if o.PaymentStatus == models.PaymentStatusPaid {
			report.TotalRevenue += o.TotalAmount
			key := startOfDay(o.CreatedAt).Format("2006-01-02")
			if _, ok := buckets[key]; ok {
				buckets[key] += o.TotalAmount
			}
		}

		if o.Status == models.StatusDelivered && o.DeliveredAt != nil {
			deliveredCount++
			deliveryMinutes += o.DeliveredAt.Sub(o.CreatedAt).Minutes()
		}

		if o.AppliedCouponDiscount != nil && *o.AppliedCouponDiscount > 0 {
			report.CouponUsage.Count++
			report.CouponUsage.TotalDiscount += *o.AppliedCouponDiscount
		}
	}

	if report.TotalOrders > 0 {
		report.AverageOrderValue = report.TotalRevenue / float64(report.TotalOrders)
	}

	// Sparse encoding: zero-valued statuses stay out of the series.
	for _, s := range statusOrder {
		if n := statusCounts[s]; n > 0 {
			report.OrdersByStatus = append(report.OrdersByStatus, StatusCount{
				Status: s,
				Label:  models.StatusLabels[s],
				Count:  n,
			})
		}
	}

	for _, key := range bucketKeys {
		report.DailyRevenue = append(report.DailyRevenue, DailyRevenue{Date: key, Revenue: buckets[key]})
	}

	if deliveredCount > 0 {
		avg := deliveryMinutes / float64(deliveredCount)
		report.AverageDeliveryMinutes = &avg
	}

	return report, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
