package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/services"
)

func TestValidateCoupon(t *testing.T) {
	db := setupTestDB(t)
	cs := services.NewCouponService(db)
	now := time.Now()

	db.Create(&models.Coupon{
		Code: "DEZ", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	db.Create(&models.Coupon{
		Code: "OFF", DiscountType: models.DiscountFixedAmount, DiscountValue: 5,
		IsActive: false, CreatedAt: now, UpdatedAt: now,
	})
	db.Create(&models.Coupon{
		Code: "VELHO", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		IsActive: true, ExpiresAt: timePtr(now.Add(-time.Hour)), CreatedAt: now, UpdatedAt: now,
	})
	db.Create(&models.Coupon{
		Code: "ESGOTADO", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		IsActive: true, UsageLimit: intPtr(3), TimesUsed: 3, CreatedAt: now, UpdatedAt: now,
	})
	db.Create(&models.Coupon{
		Code: "MIN50", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		IsActive: true, MinOrderAmount: floatPtr(50), CreatedAt: now, UpdatedAt: now,
	})

	subtotal := decimal.NewFromInt(30)

	cases := []struct {
		code   string
		valid  bool
		reason services.RejectionReason
	}{
		{"DEZ", true, services.RejectionNone},
		{"NADA", false, services.RejectionNotFound},
		{"OFF", false, services.RejectionInactive},
		{"VELHO", false, services.RejectionExpired},
		{"ESGOTADO", false, services.RejectionUsageExhausted},
		{"MIN50", false, services.RejectionBelowMinimum},
	}

	for _, tc := range cases {
		coupon, reason, err := cs.Validate(tc.code, subtotal, now)
		assert.NoError(t, err, tc.code)
		assert.Equal(t, tc.reason, reason, tc.code)
		if tc.valid {
			assert.NotNil(t, coupon, tc.code)
		} else {
			assert.Nil(t, coupon, tc.code)
		}
	}
}

func TestValidateCouponMinimumMet(t *testing.T) {
	db := setupTestDB(t)
	cs := services.NewCouponService(db)
	now := time.Now()

	db.Create(&models.Coupon{
		Code: "MIN50", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		IsActive: true, MinOrderAmount: floatPtr(50), CreatedAt: now, UpdatedAt: now,
	})

	coupon, reason, err := cs.Validate("MIN50", decimal.NewFromInt(50), now)
	assert.NoError(t, err)
	assert.Equal(t, services.RejectionNone, reason)
	assert.NotNil(t, coupon)
}

func TestValidateCouponCaseSensitive(t *testing.T) {
	db := setupTestDB(t)
	cs := services.NewCouponService(db)
	now := time.Now()

	db.Create(&models.Coupon{
		Code: "Dez", DiscountType: models.DiscountPercentage, DiscountValue: 10,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})

	coupon, reason, err := cs.Validate("DEZ", decimal.NewFromInt(30), now)
	assert.NoError(t, err)
	assert.Equal(t, services.RejectionNotFound, reason)
	assert.Nil(t, coupon)
}

func TestConsumeRespectsUsageLimit(t *testing.T) {
	db := setupTestDB(t)
	cs := services.NewCouponService(db)
	now := time.Now()

	coupon := models.Coupon{
		Code: "UNICO", DiscountType: models.DiscountFixedAmount, DiscountValue: 5,
		IsActive: true, UsageLimit: intPtr(1), CreatedAt: now, UpdatedAt: now,
	}
	db.Create(&coupon)

	ok, err := cs.Consume(db, coupon.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = cs.Consume(db, coupon.ID)
	assert.NoError(t, err)
	assert.False(t, ok, "second consume must lose the conditional write")

	var fresh models.Coupon
	db.First(&fresh, coupon.ID)
	assert.Equal(t, 1, fresh.TimesUsed)
}

func TestConsumeUnlimited(t *testing.T) {
	db := setupTestDB(t)
	cs := services.NewCouponService(db)
	now := time.Now()

	coupon := models.Coupon{
		Code: "LIVRE", DiscountType: models.DiscountPercentage, DiscountValue: 5,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	db.Create(&coupon)

	for i := 0; i < 5; i++ {
		ok, err := cs.Consume(db, coupon.ID)
		assert.NoError(t, err)
		assert.True(t, ok)
	}

	var fresh models.Coupon
	db.First(&fresh, coupon.ID)
	assert.Equal(t, 5, fresh.TimesUsed)
}
