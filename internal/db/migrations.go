package db

func Migrate(d *DB) error {
	schema := sqliteSchema
	if d.driver == DriverPostgres {
		schema = postgresSchema
	}
	_, err := d.Exec(schema)
	return err
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS visits (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    ip          TEXT    NOT NULL,
    user_agent  TEXT    NOT NULL DEFAULT 'Unknown',
    city        TEXT    NOT NULL DEFAULT 'N/A',
    region      TEXT    NOT NULL DEFAULT 'N/A',
    country     TEXT    NOT NULL DEFAULT 'N/A',
    latitude    TEXT    NOT NULL DEFAULT 'N/A',
    longitude   TEXT    NOT NULL DEFAULT 'N/A',
    visited_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS visits (
    id          BIGSERIAL PRIMARY KEY,
    ip          TEXT NOT NULL,
    user_agent  TEXT NOT NULL DEFAULT 'Unknown',
    city        TEXT NOT NULL DEFAULT 'N/A',
    region      TEXT NOT NULL DEFAULT 'N/A',
    country     TEXT NOT NULL DEFAULT 'N/A',
    latitude    TEXT NOT NULL DEFAULT 'N/A',
    longitude   TEXT NOT NULL DEFAULT 'N/A',
    visited_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at);
`
