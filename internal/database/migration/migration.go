package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_vendor",
		SQL: `CREATE TABLE IF NOT EXISTS vendor (
  id   TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_customer",
		SQL: `CREATE TABLE IF NOT EXISTS customer (
  id   TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_invoice",
		SQL: `CREATE TABLE IF NOT EXISTS invoice (
  id             TEXT        PRIMARY KEY,
  invoice_number TEXT        NOT NULL DEFAULT '',
  invoice_date   TIMESTAMPTZ,
  status         TEXT        NOT NULL DEFAULT 'pending',
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  vendor_id      TEXT        REFERENCES vendor (id),
  customer_id    TEXT        REFERENCES customer (id)
);`,
	},
	{
		Name: "create_table_line_item",
		SQL: `CREATE TABLE IF NOT EXISTS line_item (
  id          TEXT             PRIMARY KEY,
  invoice_id  TEXT             NOT NULL REFERENCES invoice (id) ON DELETE CASCADE,
  position    INT              NOT NULL,
  description TEXT             NOT NULL DEFAULT '',
  quantity    DOUBLE PRECISION NOT NULL DEFAULT 0,
  unit_price  DOUBLE PRECISION NOT NULL DEFAULT 0,
  total       DOUBLE PRECISION NOT NULL DEFAULT 0,
  UNIQUE (invoice_id, position)
);`,
	},
	{
		Name: "create_table_payment",
		SQL: `CREATE TABLE IF NOT EXISTS payment (
  id         TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL UNIQUE REFERENCES invoice (id) ON DELETE CASCADE,
  due_date   TIMESTAMPTZ,
  terms      TEXT NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_summary",
		SQL: `CREATE TABLE IF NOT EXISTS summary (
  id            TEXT             PRIMARY KEY,
  invoice_id    TEXT             NOT NULL UNIQUE REFERENCES invoice (id) ON DELETE CASCADE,
  sub_total     DOUBLE PRECISION NOT NULL DEFAULT 0,
  total_tax     DOUBLE PRECISION NOT NULL DEFAULT 0,
  invoice_total DOUBLE PRECISION NOT NULL DEFAULT 0,
  currency      TEXT             NOT NULL DEFAULT 'EUR'
);`,
	},
	{
		Name: "create_table_invoice_document",
		SQL: `CREATE TABLE IF NOT EXISTS invoice_document (
  id           TEXT        PRIMARY KEY,
  invoice_id   TEXT        NOT NULL UNIQUE REFERENCES invoice (id) ON DELETE CASCADE,
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_invoice_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_invoice_created_at ON invoice (created_at);`,
	},
	{
		Name: "create_index_invoice_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_invoice_status ON invoice (status);`,
	},
	{
		Name: "create_index_invoice_vendor_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_invoice_vendor_id ON invoice (vendor_id);`,
	},
	{
		Name: "create_index_payment_due_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_payment_due_date ON payment (due_date);`,
	},
}

// EnsureMigrated creates the invoice schema when the sentinel table is
// missing. The schema is created as a whole; individual steps are
// idempotent so a partially applied run can simply be re-run.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger) error {
	log = log.With().Str("component", "migration").Logger()
	start := time.Now()

	var exists bool
	const sentinel = "SELECT to_regclass('public.invoice') IS NOT NULL"
	if err := db.QueryRowContext(ctx, sentinel).Scan(&exists); err != nil {
		return fmt.Errorf("check sentinel table: %w", err)
	}
	if exists {
		log.Info().Msg("schema already exists, skipping migration")
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Err(err).
				Str("migration_step", step.Name).
				Dur("elapsed", time.Since(start)).
				Msg("migration failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug().
			Str("migration_step", step.Name).
			Dur("elapsed", time.Since(stepStart)).
			Msg("migration step applied")
	}

	log.Info().
		Int("steps", len(steps)).
		Dur("elapsed", time.Since(start)).
		Msg("schema created")
	return nil
}
