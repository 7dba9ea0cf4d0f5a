package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260820090000",
		up:      mig_20260820090000_roles_up,
		down:    mig_20260820090000_roles_down,
	})
}

func mig_20260820090000_roles_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS roles (
            id SERIAL PRIMARY KEY,
            name VARCHAR(50) NOT NULL UNIQUE CHECK (name IN ('USER', 'ADMIN'))
        );
    `)
	if err != nil {
		return err
	}

	// Role rows are also ensured at process start; seeding here keeps a fresh
	// database usable before the first boot.
	_, err = tx.Exec(`
        INSERT INTO roles (name) VALUES ('USER'), ('ADMIN')
        ON CONFLICT (name) DO NOTHING;
    `)

	return err
}

func mig_20260820090000_roles_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS roles;`)
	return err
}
