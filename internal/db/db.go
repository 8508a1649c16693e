package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps a sql.DB together with the driver it was opened with, so callers
// can write queries with `?` placeholders and Rebind them for postgres.
type DB struct {
	*sql.DB
	driver string
}

// Open connects to the visit store. A dsn starting with postgres:// or
// postgresql:// selects lib/pq; anything else is treated as a sqlite file
// path (":memory:" included). The connection is pinged and migrated before
// being returned.
func Open(dsn string) (*DB, error) {
	d := &DB{driver: DriverSQLite}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		d.driver = DriverPostgres
	}

	sqlDB, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.DB = sqlDB

	switch d.driver {
	case DriverSQLite:
		// SQLite pragmas for performance
		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
			"PRAGMA synchronous=NORMAL",
			"PRAGMA cache_size=-20000", // 20MB
		}
		for _, p := range pragmas {
			if _, err := sqlDB.Exec(p); err != nil {
				sqlDB.Close()
				return nil, fmt.Errorf("exec pragma %q: %w", p, err)
			}
		}
		sqlDB.SetMaxOpenConns(1) // SQLite handles one writer at a time
	case DriverPostgres:
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := Migrate(d); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Driver reports which backend this connection uses.
func (d *DB) Driver() string {
	return d.driver
}

// Rebind converts `?` placeholders to the $1, $2, ... form postgres expects.
// SQLite queries pass through untouched.
func (d *DB) Rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
