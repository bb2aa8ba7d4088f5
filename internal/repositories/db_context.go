package repositories

import (
	"fmt"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

// NewDbContext opens the relational store. Production runs on postgres; the
// sqlite dialect exists for the integration test suite.
func NewDbContext(dialect, connectionString string) (*DbContext, error) {

	var dialector gorm.Dialector
	switch dialect {
	case "postgres":
		dialector = postgres.Open(connectionString)
	case "sqlite":
		dialector = sqlite.Open(connectionString)
	default:
		return nil, fmt.Errorf("unsupported db dialect: %s", dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.Company{})
	if err != nil {
		return fmt.Errorf("failed to migrate Company entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.JobPosting{})
	if err != nil {
		return fmt.Errorf("failed to migrate JobPosting entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Application{})
	if err != nil {
		return fmt.Errorf("failed to migrate Application entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Resume{})
	if err != nil {
		return fmt.Errorf("failed to migrate Resume entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.SearchEntry{})
	if err != nil {
		return fmt.Errorf("failed to migrate SearchEntry entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
