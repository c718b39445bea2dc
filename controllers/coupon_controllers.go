package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/services"
	"github.com/pedidopronto/delivery-app/utils"
)

type CouponController struct {
	DB      *gorm.DB
	Coupons *services.CouponService
}

func NewCouponController(db *gorm.DB, coupons *services.CouponService) *CouponController {
	return &CouponController{DB: db, Coupons: coupons}
}

// GetAllCoupons
func (cc *CouponController) GetAllCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := cc.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of coupons", coupons)
}

type couponRequest struct {
	Code           string     `json:"code" binding:"required"`
	Description    string     `json:"description"`
	DiscountType   string     `json:"discount_type" binding:"required,oneof=percentage fixed_amount"`
	DiscountValue  float64    `json:"discount_value" binding:"required,gt=0"`
	IsActive       *bool      `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at"`
	UsageLimit     *int       `json:"usage_limit"`
	MinOrderAmount *float64   `json:"min_order_amount"`
}

func (r *couponRequest) validateValue() error {
	if r.DiscountType == string(models.DiscountPercentage) && r.DiscountValue > 100 {
		return errors.New("percentage discount cannot exceed 100")
	}
	return nil
}

// CreateCoupon
func (cc *CouponController) CreateCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validateValue(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon := models.Coupon{
		Code:           req.Code,
		Description:    req.Description,
		DiscountType:   models.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		IsActive:       isActive,
		ExpiresAt:      req.ExpiresAt,
		UsageLimit:     req.UsageLimit,
		MinOrderAmount: req.MinOrderAmount,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := cc.DB.Create(&coupon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Coupon created", coupon)
}

// UpdateCoupon. There is deliberately no delete endpoint: coupons are
// deactivated, never removed, so historical orders keep a valid reference.
func (cc *CouponController) UpdateCoupon(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("coupon_id"))

	var coupon models.Coupon
	if err := cc.DB.First(&coupon, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validateValue(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	coupon.Code = req.Code
	coupon.Description = req.Description
	coupon.DiscountType = models.DiscountType(req.DiscountType)
	coupon.DiscountValue = req.DiscountValue
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	coupon.ExpiresAt = req.ExpiresAt
	coupon.UsageLimit = req.UsageLimit
	coupon.MinOrderAmount = req.MinOrderAmount
	coupon.UpdatedAt = time.Now()

	if err := cc.DB.Save(&coupon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Coupon updated", coupon)
}

// ValidateCoupon -> preview validation for the ordering form. The same
// checks run again at order submission; this endpoint only drives UI
// messaging via the reason code.
func (cc *CouponController) ValidateCoupon(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("code is required"))
		return
	}
	subtotal, err := strconv.ParseFloat(c.DefaultQuery("subtotal", "0"), 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid subtotal"))
		return
	}

	coupon, rejection, err := cc.Coupons.Validate(code, decimal.NewFromFloat(subtotal), time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if coupon == nil {
		utils.RespondJSON(c, http.StatusOK, "Coupon not applicable", gin.H{
			"valid":  false,
			"reason": rejection,
		})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Coupon valid", gin.H{
		"valid":  true,
		"coupon": coupon,
	})
}
