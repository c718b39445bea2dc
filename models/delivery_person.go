package models

import "time"

type DeliveryPerson struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	VehicleDetails *string   `gorm:"type:varchar(255)" json:"vehicle_details,omitempty"`
	LicensePlate   *string   `gorm:"type:varchar(20)" json:"license_plate,omitempty"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}
