package config

import (
	"fmt"
	"os"
	"time"

	"github.com/anchordtai/Cooperative-Management-Software/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func GetDatabaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_SSLMODE"),
	)
}

// BootDB connects to Postgres, migrates the schema, and seeds the admin
// account and the settings row when they are missing.
func BootDB() (*gorm.DB, error) {
	address := GetDatabaseURL()

	var gormLogger logger.Interface
	if os.Getenv("APP_ENV") == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	} else {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(address), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate schemas: %w", err)
	}

	if err := seedAdminUser(db); err != nil {
		return nil, err
	}
	if err := seedSettings(db); err != nil {
		return nil, err
	}

	log.Info().Msg("connected to database")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Member{},
		&domain.Loan{},
		&domain.Transaction{},
		&domain.Settings{},
	)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPass := os.Getenv("ADMIN_PASSWORD")
	adminPhone := os.Getenv("ADMIN_PHONE")
	if adminEmail == "" || adminPass == "" {
		log.Warn().Msg("skipping admin seeding, missing ADMIN_EMAIL or ADMIN_PASSWORD in env")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	firstName := "System"
	lastName := "Administrator"
	admin := domain.User{
		Email:           adminEmail,
		Phone:           adminPhone,
		Password:        string(hashed),
		Role:            domain.RoleAdmin,
		FirstName:       &firstName,
		LastName:        &lastName,
		IsEmailVerified: true,
		IsPhoneVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	log.Info().Str("email", adminEmail).Msg("seeded admin user")
	return nil
}

// seedSettings makes sure exactly one settings row exists so reads never
// have to handle an empty table.
func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Settings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := domain.Settings{
		CooperativeName:     envOr("COOP_NAME", "Cooperative Society"),
		Email:               envOr("COOP_EMAIL", "info@cooperative.example"),
		Currency:            envOr("COOP_CURRENCY", "USD"),
		InterestRate:        5,
		MinimumSavings:      100,
		EnableNotifications: true,
		EnableTwoFactor:     true,
	}
	if err := db.Create(&settings).Error; err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	log.Info().Msg("seeded default settings")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
