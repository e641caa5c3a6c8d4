package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/kbukum/labauth/component"
	"github.com/kbukum/labauth/database/migration"
	"github.com/kbukum/labauth/logger"
)

// MigrationSource locates the migrations for one driver.
type MigrationSource func(Driver) (fs.FS, string)

// Component wraps DB and implements component.Component for lifecycle management.
type Component struct {
	db         *DB
	cfg        Config
	log        *logger.Logger
	migrations MigrationSource
}

// NewComponent creates a database component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	return &Component{cfg: cfg, log: log}
}

// WithMigrations registers the schema applied on Start when cfg.Migrate is set.
func (c *Component) WithMigrations(src MigrationSource) *Component {
	c.migrations = src
	return c
}

// DB returns the underlying *DB, or nil if not started.
func (c *Component) DB() *DB {
	return c.db
}

var _ component.Component = (*Component)(nil)

func (c *Component) Name() string { return "database" }

// Start connects to the database and applies migrations.
func (c *Component) Start(ctx context.Context) error {
	db, err := Open(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("database start: %w", err)
	}
	c.db = db

	if c.cfg.Migrate && c.migrations != nil {
		fsys, path := c.migrations(c.cfg.Driver)
		if err := migration.Up(db.GormDB, fsys, path, MigrationDriver(c.cfg.Driver)); err != nil {
			return fmt.Errorf("database migrate: %w", err)
		}
		version, _, _ := migration.Version(db.GormDB, fsys, path, MigrationDriver(c.cfg.Driver))
		db.log.Info("Schema migrated", map[string]interface{}{"version": version})
	}
	return nil
}

// Stop gracefully closes the database connection.
func (c *Component) Stop(_ context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Health pings the database.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.db == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "database not initialized"}
	}
	if err := c.db.PingContext(ctx); err != nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: fmt.Sprintf("ping failed: %v", err)}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns infrastructure summary info for the startup log.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("driver=%s pool=%d/%d", c.cfg.Driver, c.cfg.MaxOpenConns, c.cfg.MaxIdleConns)
	if c.cfg.Migrate {
		details += " migrate=on"
	}
	return component.Description{Name: "Database", Type: "database", Details: details}
}
