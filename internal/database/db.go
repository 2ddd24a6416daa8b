package database

import (
	"smartbook/internal/config"
	ierr "smartbook/internal/errors"
	"smartbook/internal/logger"
	"smartbook/internal/model"
	"smartbook/internal/types"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection opens the postgres pool and migrates the city tax schema.
func NewConnection(cfg *config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Deployment.Mode == types.ModeLocal && cfg.Logging.Level == types.LogLevelDebug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Postgres.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to database").
			WithReportableDetails(map[string]any{
				"host":   cfg.Postgres.Host,
				"dbname": cfg.Postgres.DBName,
			}).
			Mark(ierr.ErrDatabase)
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.AuditLog{},
		&model.TaxRule{},
		&model.Booking{},
		&model.Guest{},
		&model.TaxCalculation{},
	)
	if err != nil {
		log.Warnw("failed to auto-migrate models", "error", err)
	}

	return db, nil
}
