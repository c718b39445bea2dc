package config

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pedidopronto/delivery-app/utils"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// StoreConfig describes the restaurant itself; the address is the origin
// of every delivery route.
type StoreConfig struct {
	Name    string
	Address string
}

var AppConfig *Config

// Load reads .env (when present) and the process environment into
// AppConfig.
func Load() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		utils.InfoLogger.Printf("no .env file, falling back to environment: %v", err)
	}
	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT")

	AppConfig = &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Store: StoreConfig{
			Name:    viper.GetString("STORE_NAME"),
			Address: viper.GetString("STORE_ADDRESS"),
		},
	}

	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = "8080"
	}
}

// InitDB opens the MySQL connection described by AppConfig.
func InitDB() (*gorm.DB, error) {
	db := AppConfig.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		db.User, db.Password, db.Host, db.Port, db.Name)

	logMode := logger.Warn
	if AppConfig.Server.Env == "development" {
		logMode = logger.Info
	}

	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
}
