package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY,
  username      TEXT        NOT NULL UNIQUE,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_medical_records",
		SQL: `CREATE TABLE IF NOT EXISTS medical_records (
  id            UUID        PRIMARY KEY,
  user_id       UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  file_name     TEXT        NOT NULL,
  original_name TEXT        NOT NULL,
  file_type     TEXT        NOT NULL,
  file_size     BIGINT      NOT NULL CHECK (file_size > 0),
  storage_path  TEXT        NOT NULL UNIQUE,
  download_url  TEXT        NOT NULL,
  uploaded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_wellness_entries",
		SQL: `CREATE TABLE IF NOT EXISTS wellness_entries (
  id         UUID        PRIMARY KEY,
  user_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  mood       SMALLINT    NOT NULL CHECK (mood BETWEEN 1 AND 5),
  notes      TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_medical_records_user_uploaded",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_medical_records_user_uploaded ON medical_records (user_id, uploaded_at DESC);`,
	},
	{
		Name: "create_index_wellness_entries_user_created",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_wellness_entries_user_created ON wellness_entries (user_id, created_at DESC);`,
	},
}

// EnsureMigrated checks if the 'users' table exists and runs the schema
// migration if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logrus.Logger) error {
	start := time.Now()

	var exists bool
	query := "SELECT to_regclass('public.users') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.WithError(err).Error("migration sentinel check failed")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("schema already exists, skipping migration")
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithFields(logrus.Fields{
				"migration_step": step.Name,
				"error":          err.Error(),
			}).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.WithFields(logrus.Fields{
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("migration complete")
	return nil
}
