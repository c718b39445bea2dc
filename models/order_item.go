package models

import "time"

// OrderItem is immutable after the order is created. Name and Price are
// snapshots taken from the menu item at order time.
type OrderItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	OrderID    uint     `gorm:"not null;index" json:"order_id"`
	Order      Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name       string   `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	ItemNotes  string   `gorm:"type:text" json:"item_notes,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
