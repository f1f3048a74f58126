package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type PoolConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LogLevel        logger.LogLevel
}

type DatabasePool struct {
	DB     *gorm.DB
	config *PoolConfig
}

func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		Driver:          DriverSQLite,
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute * 30,
		LogLevel:        logger.Warn,
	}
}

// PoolConfigFrom maps the application database settings onto a pool config.
func PoolConfigFrom(cfg *config.Config) *PoolConfig {
	dsn := cfg.GetDatabaseDSN()
	if cfg.Database.Driver == DriverSQLite {
		dsn = SQLiteDSN(dsn)
	}
	return &PoolConfig{
		Driver:          cfg.Database.Driver,
		DSN:             dsn,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		LogLevel:        ParseLogLevel(cfg.Database.LogLevel),
	}
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// MemoryDSN names an in-memory SQLite database shared by every connection of
// one pool and dropped when the last connection closes.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
}

func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func NewDatabasePool(config *PoolConfig) (*DatabasePool, error) {
	if config == nil {
		return nil, errors.New("database pool config is required")
	}
	if config.DSN == "" {
		return nil, errors.New("database DSN is required")
	}
	if config.MaxOpenConns < 0 || config.MaxIdleConns < 0 || config.ConnMaxLifetime < 0 || config.ConnMaxIdleTime < 0 {
		return nil, errors.New("database pool limits must not be negative")
	}

	var dialector gorm.Dialector
	switch config.Driver {
	case DriverPostgres:
		dialector = postgres.Open(config.DSN)
	case DriverSQLite, "":
		dialector = sqlite.Open(config.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  config.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            config.Driver == DriverPostgres,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("📦 Database pool ready (driver=%s, max_open=%d, max_idle=%d)",
		config.Driver, config.MaxOpenConns, config.MaxIdleConns)

	return &DatabasePool{
		DB:     db,
		config: config,
	}, nil
}

// Migrate creates or updates the task, tag and task_tags tables.
func (p *DatabasePool) Migrate() error {
	if p.DB == nil {
		return errors.New("database connection is nil")
	}
	return Migrate(p.DB)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Task{}, &models.Tag{}, &models.TaskTag{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (p *DatabasePool) Stats() map[string]interface{} {
	if p.DB == nil {
		return map[string]interface{}{"error": "database connection is nil"}
	}

	sqlDB, err := p.DB.DB()
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	stats := sqlDB.Stats()
	return map[string]interface{}{
		"driver":               p.config.Driver,
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_idle_time_closed": stats.MaxIdleTimeClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}
}

func (p *DatabasePool) Health() error {
	if p.DB == nil {
		return errors.New("database connection is nil")
	}

	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

func (p *DatabasePool) Close() error {
	if p.DB == nil {
		return nil
	}

	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
