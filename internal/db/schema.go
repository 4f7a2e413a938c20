package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Dates are stored as YYYY-MM-DD text; they are calendar days, never instants.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS profile
(
    id               SERIAL PRIMARY KEY,
    name             TEXT NOT NULL,
    weight           TEXT NOT NULL,
    height           TEXT NOT NULL,
    belt             TEXT NOT NULL,
    start_date       TEXT NOT NULL,
    competition_date TEXT NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ix_profile_created_at ON profile (created_at);

CREATE TABLE IF NOT EXISTS daily_log
(
    id              SERIAL PRIMARY KEY,
    profile_id      INTEGER NOT NULL REFERENCES profile (id) ON DELETE CASCADE,
    date            TEXT    NOT NULL,
    completed_items JSONB   NOT NULL DEFAULT '[]',
    journal_entry   TEXT    NOT NULL DEFAULT '',
    weight          TEXT,
    mood            INTEGER,
    sleep_hours     TEXT,
    sleep_quality   TEXT,
    hrv             TEXT,
    resting_hr      TEXT,
    active_calories TEXT,
    daily_focus     TEXT,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT uq_daily_log_profile_date UNIQUE (profile_id, date)
);
`

// Migrate creates the schema when missing. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	log.Debugln("db schema in place")
	return nil
}
