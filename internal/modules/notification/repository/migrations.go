package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coachlab/notification-service/pkg/logger"
	"github.com/jmoiron/sqlx"
)

type migration struct {
	version int
	sql     string
}

// ordered, version sequential from 1, statements portable between postgres and sqlite
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS users (
	id                    TEXT PRIMARY KEY,
	role                  TEXT NOT NULL,
	push_notifications    BOOLEAN,
	message_notifications BOOLEAN,
	updated_at            TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id           TEXT PRIMARY KEY,
	recipient_id TEXT NOT NULL,
	type         TEXT NOT NULL,
	title        TEXT NOT NULL,
	message      TEXT NOT NULL DEFAULT '',
	payload      TEXT NOT NULL DEFAULT '{}',
	is_read      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications(recipient_id, is_read);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS push_subscriptions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	endpoint   TEXT NOT NULL,
	p256dh     TEXT NOT NULL,
	auth       TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	UNIQUE (user_id, endpoint)
);

CREATE INDEX IF NOT EXISTS idx_push_subscriptions_user ON push_subscriptions(user_id);
`,
	},
}

// Migrate apply outstanding schema migrations in order, return applied versions
func Migrate(ctx context.Context, db *sqlx.DB) (applied []int, err error) {
	if _, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL
)`); err != nil {
		return nil, fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	if err = db.GetContext(ctx, &currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if err = applyMigration(ctx, db, m); err != nil {
			return applied, fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		logger.LogIf("sql: applied migration v%d", m.version)
		applied = append(applied, m.version)
	}
	return applied, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, m migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(m.sql) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)"),
		m.version, time.Now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

func splitStatements(script string) (stmts []string) {
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
