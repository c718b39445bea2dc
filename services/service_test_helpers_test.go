package services_test

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pedidopronto/delivery-app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	// One pooled connection, or each new conn would see its own empty
	// in-memory database.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.DeliveryPerson{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedMenu(t *testing.T, db *gorm.DB) (burger, soda models.MenuItem) {
	t.Helper()
	burger = models.MenuItem{Name: "X-Burger", Price: 29.90, Category: "Lanches", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	soda = models.MenuItem{Name: "Refrigerante", Price: 5.00, Category: "Bebidas", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.Create(&burger).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&soda).Error; err != nil {
		t.Fatal(err)
	}
	return burger, soda
}

func seedDeliveryPerson(t *testing.T, db *gorm.DB) models.DeliveryPerson {
	t.Helper()
	person := models.DeliveryPerson{Name: "Carlos", IsActive: true, CreatedAt: time.Now()}
	if err := db.Create(&person).Error; err != nil {
		t.Fatal(err)
	}
	return person
}

func intPtr(n int) *int             { return &n }
func floatPtr(f float64) *float64   { return &f }
func strPtr(s string) *string       { return &s }
func timePtr(t time.Time) *time.Time { return &t }
