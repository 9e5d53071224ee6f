// Package migrate applies the embedded goose migrations.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/db"
)

// Commands understood by Run.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// Files returns the migration files rooted at the migrations directory.
func Files() (fs.FS, error) {
	return fs.Sub(db.Migrations, db.MigrationsDir)
}

// Run executes one goose command against sqlDB.
func Run(ctx context.Context, sqlDB *sql.DB, command string, logger zerolog.Logger) error {
	switch command {
	case CommandUp, CommandDown, CommandStatus:
	default:
		return fmt.Errorf("unknown migrate command %q (use up, down or status)", command)
	}

	files, err := Files()
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, files)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	switch command {
	case CommandUp:
		results, err := provider.Up(ctx)
		for _, res := range results {
			logResult(logger, res)
		}
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		logger.Info().Int("applied", len(results)).Msg("migrations applied")
	case CommandDown:
		res, err := provider.Down(ctx)
		if res != nil {
			logResult(logger, res)
		}
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	case CommandStatus:
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		for _, st := range statuses {
			ev := logger.Info().
				Int64("version", st.Source.Version).
				Str("file", st.Source.Path).
				Str("state", string(st.State))
			if !st.AppliedAt.IsZero() {
				ev = ev.Time("applied_at", st.AppliedAt)
			}
			ev.Msg("migration")
		}
	}
	return nil
}

func logResult(logger zerolog.Logger, res *goose.MigrationResult) {
	ev := logger.Info()
	if res.Error != nil {
		ev = logger.Error().Err(res.Error)
	}
	ev.Int64("version", res.Source.Version).
		Str("file", res.Source.Path).
		Str("direction", res.Direction).
		Dur("duration", res.Duration).
		Msg("migration")
}
