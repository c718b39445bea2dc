package models

import "time"

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(100);not null" json:"category"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    *string   `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	IsPromotion bool      `gorm:"not null;default:false" json:"is_promotion"`
	DataAIHint  *string   `gorm:"type:varchar(100)" json:"data_ai_hint,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
