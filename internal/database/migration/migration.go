// Package migration creates the analysis archive schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"atlas/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is checked before running any step.
const sentinelTable = "public.analyses"

var steps = []migrationStep{
	{
		Name: "create_table_analyses",
		SQL: `CREATE TABLE IF NOT EXISTS analyses (
  id              UUID             PRIMARY KEY,
  domain          TEXT             NOT NULL,
  query           TEXT             NOT NULL,
  language        TEXT             NOT NULL DEFAULT 'en',
  success         BOOLEAN          NOT NULL,
  confidence      DOUBLE PRECISION NOT NULL DEFAULT 0,
  complexity      INTEGER          NOT NULL DEFAULT 0,
  primary_meaning TEXT             NOT NULL DEFAULT '',
  concepts        TEXT             NOT NULL DEFAULT '[]',
  report_key      TEXT             NOT NULL UNIQUE,
  duration_ms     BIGINT           NOT NULL CHECK (duration_ms >= 0),
  created_at      TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_analyses_domain",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analyses_domain ON analyses (domain);`,
	},
	{
		Name: "create_index_analyses_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at);`,
	},
}

// EnsureMigrated checks if the analyses table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := logger.WithComponent("database").With().Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Msg("checking schema")

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().Err(err).Str("event", "db_migration_failed").Str("status", "error").
			Int64("duration_ms", time.Since(start).Milliseconds()).Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().Str("event", "db_migration_skip").Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Int("steps", len(steps)).Msg("migrating")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().Err(err).Str("event", "db_migration_failed").Str("status", "error").
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().Str("event", "db_migration_step").Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("migration step applied")
	}

	log.Info().Str("event", "db_migration_success").Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).Msg("migration complete")
	return nil
}
