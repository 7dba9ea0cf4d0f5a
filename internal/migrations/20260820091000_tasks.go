package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260820091000",
		up:      mig_20260820091000_tasks_up,
		down:    mig_20260820091000_tasks_down,
	})
}

func mig_20260820091000_tasks_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS tasks (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            task_title VARCHAR(255) NOT NULL,
            task_description TEXT NOT NULL,
            category VARCHAR(255),
            due_date DATE,
            progress INT NOT NULL DEFAULT 0,
            is_completed BOOLEAN NOT NULL DEFAULT FALSE,
            is_important BOOLEAN NOT NULL DEFAULT FALSE,
            user_id UUID NOT NULL REFERENCES users(id),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
    `)
	if err != nil {
		return err
	}

	// The due-soon scan queries a date range across all users.
	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
    `)

	return err
}

func mig_20260820091000_tasks_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS tasks;`)
	return err
}
