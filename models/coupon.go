package models

import "time"

type Coupon struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Code           string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Description    string       `gorm:"type:text" json:"description,omitempty"`
	DiscountType   DiscountType `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue  float64      `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	IsActive       bool         `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt      *time.Time   `json:"expires_at,omitempty"`
	UsageLimit     *int         `json:"usage_limit,omitempty"`
	TimesUsed      int          `gorm:"not null;default:0" json:"times_used"`
	MinOrderAmount *float64     `gorm:"type:decimal(10,2)" json:"min_order_amount,omitempty"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}
