package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/chatauth/internal/entities"
)

// InMemoryPath opens a private, process-local database. Used by tests.
const InMemoryPath = ":memory:"

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens dbPath and logs query failures to the standard
// logrus logger.
func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithLogger(dbPath, logrus.StandardLogger())
}

func NewDatabaseWithLogger(dbPath string, log logrus.FieldLogger) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	// Every new connection to :memory: is a new, empty database
	if dbPath == InMemoryPath {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
