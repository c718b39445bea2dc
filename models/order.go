package models

import "time"

type Order struct {
	ID                     uint        `gorm:"primaryKey" json:"id"`
	Reference              string      `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	CustomerName           string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerAddress        string      `gorm:"type:text;not null" json:"customer_address"`
	CustomerReferencePoint string      `gorm:"type:varchar(255)" json:"customer_reference_point,omitempty"`
	TotalAmount            float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Status                 OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	PaymentType   *PaymentType  `gorm:"type:varchar(20)" json:"payment_type,omitempty"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`

	// Delivery assignment, set on the dispatch transition. The name is a
	// snapshot so renaming a delivery person does not rewrite history.
	DeliveryPersonID   *uint           `gorm:"index" json:"delivery_person_id,omitempty"`
	DeliveryPerson     *DeliveryPerson `gorm:"foreignKey:DeliveryPersonID" json:"delivery_person,omitempty"`
	DeliveryPersonName *string         `gorm:"type:varchar(255)" json:"delivery_person_name,omitempty"`
	OptimizedRoute     *string         `gorm:"type:text" json:"optimized_route,omitempty"`

	// Coupon snapshot, frozen at creation time and never recomputed.
	CouponID              *uint    `gorm:"index" json:"coupon_id,omitempty"`
	AppliedCouponCode     *string  `gorm:"type:varchar(50)" json:"applied_coupon_code,omitempty"`
	AppliedCouponDiscount *float64 `gorm:"type:decimal(10,2)" json:"applied_coupon_discount,omitempty"`

	Notes       string      `gorm:"type:text" json:"notes,omitempty"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
	DeliveredAt *time.Time  `json:"delivered_at,omitempty"`
}
