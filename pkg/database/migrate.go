package database

import (
	"context"
	"fmt"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id             BIGSERIAL PRIMARY KEY,
	first_name     VARCHAR(100) NOT NULL,
	last_name      VARCHAR(100) NOT NULL,
	email          VARCHAR(255) NOT NULL,
	password       VARCHAR(255) NOT NULL,
	role           VARCHAR(20)  NOT NULL DEFAULT 'user',
	is_banned      BOOLEAN      NOT NULL DEFAULT FALSE,
	last_active_at TIMESTAMPTZ,
	newsletter     BOOLEAN      NOT NULL DEFAULT FALSE,
	created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	CONSTRAINT users_email_key UNIQUE (email),
	CONSTRAINT users_role_check CHECK (role IN ('user', 'admin'))
);

CREATE INDEX IF NOT EXISTS idx_users_last_active_at ON users (last_active_at);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, usersSchema); err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}
	return nil
}
