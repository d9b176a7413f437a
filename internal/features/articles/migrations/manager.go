package migrations

import (
	"context"
	"fmt"

	"civic-sights/internal/core"
)

// Manager handles article schema migrations
type Manager struct {
	migrationService *core.MigrationService
	driver           string
	logger           *core.Logger
}

// NewManager creates a new article migration manager
func NewManager(db *core.Database, logger *core.Logger) *Manager {
	return &Manager{
		migrationService: core.NewMigrationService(db, logger),
		driver:           db.Driver(),
		logger:           logger,
	}
}

// Migrations returns all article migrations in order for the active driver
func (m *Manager) Migrations() []core.Migration {
	if m.driver == core.DriverPostgres {
		return []core.Migration{migration001Postgres}
	}
	return []core.Migration{migration001SQLite}
}

// Migrate applies all pending article migrations
func (m *Manager) Migrate(ctx context.Context) error {
	if err := m.migrationService.InitMigrations(ctx); err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	migrations := m.Migrations()
	m.logger.Info("Starting article migrations", "count", len(migrations))

	for _, migration := range migrations {
		if err := m.migrationService.ApplyMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}

	m.logger.Info("Article migrations completed")
	return nil
}
