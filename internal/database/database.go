package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/giftloom/core/internal/config"
	"github.com/giftloom/core/internal/models"
)

// Connect opens the MySQL connection, runs migrations and seeds the
// admin account when credentials are configured.
func Connect(cfg *config.AppConfig, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.IsDev() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, err
	}
	if err := seedAdmin(db, cfg, logger); err != nil {
		return nil, err
	}

	logger.Info("database ready", zap.String("database", cfg.Database.Name))
	return db, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.UserModel{},
		&models.GiftSiteModel{},
		&models.GiftResponseModel{},
		&models.ValentinePageModel{},
		&models.ValentinePhotoModel{},
		&models.CouplesQuizModel{},
		&models.GiftCardModel{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func seedAdmin(db *gorm.DB, cfg *config.AppConfig, logger *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.UserModel{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.UserModel{
		Email:    cfg.AdminEmail,
		FullName: "Administrator",
		Password: string(hash),
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}

	logger.Info("seeded admin account", zap.String("email", cfg.AdminEmail))
	return nil
}
