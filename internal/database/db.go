package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zaqqye/weld_backend_v1/internal/config"
	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/repository"
)

func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: newGormLogger(log, cfg.LogLevel),
	})
}

// newGormLogger sends gorm's SQL and slow-query logs through zap.
// SQL statements are only logged at debug level.
func newGormLogger(log *zap.Logger, level string) logger.Interface {
	logLevel := logger.Warn
	if level == "debug" {
		logLevel = logger.Info
	}
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Weld{})
}

// OpenRepository picks the weld store named by cfg.StoreDriver.
// The postgres store is connected and migrated before it is returned.
func OpenRepository(cfg *config.Config, log *zap.Logger) (repository.WeldRepository, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn("using in-memory weld store; data is lost on restart")
		return repository.NewMemoryWeldRepository(), nil
	case "postgres", "":
		db, err := Connect(cfg, log)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
		return repository.NewGormWeldRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
