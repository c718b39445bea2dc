package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/models"
)

// RejectionReason tells the caller why a coupon was not applied. Coupon
// invalidity is a normal outcome, never an error.
type RejectionReason string

const (
	RejectionNone           RejectionReason = ""
	RejectionNotFound       RejectionReason = "not_found"
	RejectionInactive       RejectionReason = "inactive"
	RejectionExpired        RejectionReason = "expired"
	RejectionUsageExhausted RejectionReason = "usage_exhausted"
	RejectionBelowMinimum   RejectionReason = "below_minimum"
)

type CouponService struct {
	DB *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{DB: db}
}

// FindByCode looks a coupon up by its exact code. Returns nil when absent.
func (cs *CouponService) FindByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := cs.DB.Where("code = ?", code).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Validate re-checks a coupon against a subtotal at a point in time. The
// checks run in a fixed sequence so each failure maps to a stable reason
// for the UI. A rejection returns a nil coupon.
func (cs *CouponService) Validate(code string, subtotal decimal.Decimal, now time.Time) (*models.Coupon, RejectionReason, error) {
	coupon, err := cs.FindByCode(code)
	if err != nil {
		return nil, RejectionNone, err
	}
	if coupon == nil {
		return nil, RejectionNotFound, nil
	}
	if !coupon.IsActive {
		return nil, RejectionInactive, nil
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(now) {
		return nil, RejectionExpired, nil
	}
	if coupon.UsageLimit != nil && coupon.TimesUsed >= *coupon.UsageLimit {
		return nil, RejectionUsageExhausted, nil
	}
	if coupon.MinOrderAmount != nil && subtotal.LessThan(decimal.NewFromFloat(*coupon.MinOrderAmount)) {
		return nil, RejectionBelowMinimum, nil
	}
	return coupon, RejectionNone, nil
}

// Consume increments times_used by one, guarded so the counter can never
// exceed the usage limit. Two racing orders that both validated the same
// near-exhausted coupon are settled here: only one update matches. Runs on
// tx so a rolled-back order also rolls back the counter.
func (cs *CouponService) Consume(tx *gorm.DB, couponID uint) (bool, error) {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit IS NULL OR times_used < usage_limit)", couponID).
		UpdateColumn("times_used", gorm.Expr("times_used + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DiscountValue returns the coupon's discount value as a decimal.
func DiscountValue(coupon *models.Coupon) decimal.Decimal {
	return decimal.NewFromFloat(coupon.DiscountValue)
}
