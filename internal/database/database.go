package database

import (
	"fmt"

	"github.com/Publisher-notfound/Rahoot/internal/config"
	"github.com/Publisher-notfound/Rahoot/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	log.Info().Msg("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Host{},
		&models.Quiz{},
		&models.Question{},
		&models.ScoreRecord{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	log.Info().Msg("database migrated")
}
