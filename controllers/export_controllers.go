package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/utils"
)

type ExportController struct {
	DB *gorm.DB
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db}
}

// ExportOrdersCSV streams the order book as CSV: one row per order, the
// items packed into a single column as name|qty|price|notes records joined
// with ";".
func (ec *ExportController) ExportOrdersCSV(c *gin.Context) {
	query := ec.DB.Preload("OrderItems").Order("created_at")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("orders-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	header := []string{
		"reference", "customer_name", "customer_address", "status",
		"payment_type", "payment_status", "total_amount", "coupon_code",
		"coupon_discount", "delivery_person", "created_at", "delivered_at",
		"items",
	}
	if err := w.Write(header); err != nil {
		return
	}

	for _, o := range orders {
		w.Write(orderCSVRow(o))
	}
}

func orderCSVRow(o models.Order) []string {
	paymentType := ""
	if o.PaymentType != nil {
		paymentType = string(*o.PaymentType)
	}
	couponCode, couponDiscount := "", ""
	if o.AppliedCouponCode != nil {
		couponCode = *o.AppliedCouponCode
	}
	if o.AppliedCouponDiscount != nil {
		couponDiscount = fmt.Sprintf("%.2f", *o.AppliedCouponDiscount)
	}
	deliveryPerson := ""
	if o.DeliveryPersonName != nil {
		deliveryPerson = *o.DeliveryPersonName
	}
	deliveredAt := ""
	if o.DeliveredAt != nil {
		deliveredAt = o.DeliveredAt.Format(time.RFC3339)
	}

	items := make([]string, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		items = append(items, fmt.Sprintf("%s|%d|%.2f|%s", item.Name, item.Quantity, item.Price, item.ItemNotes))
	}

	return []string{
		o.Reference,
		o.CustomerName,
		o.CustomerAddress,
		string(o.Status),
		paymentType,
		string(o.PaymentStatus),
		fmt.Sprintf("%.2f", o.TotalAmount),
		couponCode,
		couponDiscount,
		deliveryPerson,
		o.CreatedAt.Format(time.RFC3339),
		deliveredAt,
		strings.Join(items, ";"),
	}
}
