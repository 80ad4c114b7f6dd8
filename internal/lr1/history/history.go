// Package history keeps an audit log of grammar constructions (one row per
// attempt, success or failure) in a sqlite database. Grounded on tunaq's
// server/dao/sqlite (NewSessionsDBConn/init/Create shape), trimmed to a
// single table instead of a whole DAO suite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one row of the construction audit log.
type Entry struct {
	ID          uuid.UUID
	GrammarText string
	Succeeded   bool
	FailureText string
	NumStates   int
	Created     time.Time
}

// DB is a construction history store backed by sqlite.
type DB struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at file and
// ensures the construction_history table exists.
func Open(file string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	h := &DB{db: sqlDB}
	if err := h.init(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *DB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS construction_history (
		id TEXT NOT NULL PRIMARY KEY,
		grammar_text TEXT NOT NULL,
		succeeded INTEGER NOT NULL,
		failure_text TEXT NOT NULL,
		num_states INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`
	if _, err := h.db.Exec(stmt); err != nil {
		return wrapDBError(err)
	}
	return nil
}

// Record inserts a new entry for one construction attempt.
func (h *DB) Record(ctx context.Context, e Entry) (Entry, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return Entry{}, fmt.Errorf("could not generate ID: %w", err)
	}
	e.ID = newUUID
	e.Created = time.Now()

	stmt, err := h.db.Prepare(`INSERT INTO construction_history
		(id, grammar_text, succeeded, failure_text, num_states, created)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Entry{}, wrapDBError(err)
	}

	succeededInt := 0
	if e.Succeeded {
		succeededInt = 1
	}

	_, err = stmt.ExecContext(ctx, e.ID.String(), e.GrammarText, succeededInt, e.FailureText, e.NumStates, e.Created.Unix())
	if err != nil {
		return Entry{}, wrapDBError(err)
	}

	return e, nil
}

// List returns every recorded entry, most recent first.
func (h *DB) List(ctx context.Context) ([]Entry, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT id, grammar_text, succeeded, failure_text, num_states, created
		FROM construction_history ORDER BY created DESC;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []Entry
	for rows.Next() {
		var e Entry
		var id string
		var succeededInt int
		var created int64

		if err := rows.Scan(&id, &e.GrammarText, &succeededInt, &e.FailureText, &e.NumStates, &created); err != nil {
			return nil, wrapDBError(err)
		}

		e.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
		}
		e.Succeeded = succeededInt != 0
		e.Created = time.Unix(created, 0)

		all = append(all, e)
	}

	return all, nil
}

// Close releases the underlying database handle.
func (h *DB) Close() error {
	return h.db.Close()
}

var errNotFound = errors.New("not found")

func wrapDBError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errNotFound
	}
	return err
}
