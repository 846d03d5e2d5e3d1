package config

import (
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"food-delivery-marketplace/models"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Pricing  PricingConfig
}

type ServerConfig struct {
	Port    int
	GinMode string
}

type DatabaseConfig struct {
	Path string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type OTPConfig struct {
	Code string
}

type PricingConfig struct {
	DeliveryFee float64
	TaxRate     float64
}

var (
	// C holds the loaded configuration
	C *Config
	// DB is the shared gorm handle, set by InitDB
	DB *gorm.DB
	// JWTSecret signs bearer tokens
	JWTSecret []byte
)

// Load reads configuration from the environment with sane defaults.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DB_PATH", "marketplace.db")
	viper.SetDefault("JWT_SECRET", "supersecretfooddeliveryjwt")
	viper.SetDefault("JWT_TTL", "24h")
	viper.SetDefault("OTP_CODE", "123456")
	viper.SetDefault("DELIVERY_FEE", 40.0)
	viper.SetDefault("TAX_RATE", 0.05)

	ttl, err := time.ParseDuration(viper.GetString("JWT_TTL"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    viper.GetInt("SERVER_PORT"),
			GinMode: viper.GetString("GIN_MODE"),
		},
		Database: DatabaseConfig{
			Path: viper.GetString("DB_PATH"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			TTL:    ttl,
		},
		OTP: OTPConfig{
			Code: viper.GetString("OTP_CODE"),
		},
		Pricing: PricingConfig{
			DeliveryFee: viper.GetFloat64("DELIVERY_FEE"),
			TaxRate:     viper.GetFloat64("TAX_RATE"),
		},
	}

	C = cfg
	JWTSecret = []byte(cfg.JWT.Secret)
	return cfg, nil
}

// InitDB opens the sqlite database and migrates all models.
func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(C.Database.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate runs schema migration on the given handle. Shared with tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}
