// Package kvstore persists per-user JSON documents in SQLite, one document
// per named key. Every document is wrapped in a versioned schema envelope;
// an entry whose envelope or payload does not decode is treated as absent,
// never as an error. Concurrent writers are coordinated with an optimistic
// version stamp per row.
package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// schemaVersion tags every stored envelope. Documents written under a
// different version are ignored on read.
const schemaVersion = 1

const casRetries = 3

var (
	// ErrNotFound means the key has no decodable document.
	ErrNotFound = errors.New("document not found")
	// ErrConflict means a concurrent writer won every CAS attempt.
	ErrConflict = errors.New("document write conflict")
	// ErrSkip can be returned from an Update closure to abandon the
	// cycle without writing. Update reports success to the caller.
	ErrSkip = errors.New("skip write")
)

type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

// Store reads and writes user documents.
type Store struct {
	db *sql.DB
}

// New returns a Store backed by db. The user_documents table must exist.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Read decodes the document under key into out. Absent rows, foreign
// schema versions and malformed payloads all yield ErrNotFound.
func (s *Store) Read(ctx context.Context, userID, key string, out any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM user_documents WHERE user_id = ? AND key = ?`,
		userID, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read document %q: %w", key, err)
	}
	return decode(raw, out)
}

// Write fully overwrites the document under key.
func (s *Store) Write(ctx context.Context, userID, key string, val any) error {
	raw, err := encode(val)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_documents(user_id, key, version, value)
		VALUES(?, ?, 1, ?)
		ON CONFLICT(user_id, key)
		DO UPDATE SET value = excluded.value,
		              version = user_documents.version + 1,
		              updated_at = CURRENT_TIMESTAMP
	`, userID, key, raw)
	if err != nil {
		return fmt.Errorf("write document %q: %w", key, err)
	}
	return nil
}

// Delete removes the document under key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, userID, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_documents WHERE user_id = ? AND key = ?`, userID, key)
	if err != nil {
		return fmt.Errorf("delete document %q: %w", key, err)
	}
	return nil
}

// DeleteAll removes every document belonging to userID.
func (s *Store) DeleteAll(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_documents WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete documents for user: %w", err)
	}
	return nil
}

// Update runs a read-modify-write cycle under optimistic concurrency
// control: the write only lands if the row's version stamp is unchanged
// since the read, and the cycle is retried on conflict. fn receives the
// current document (the zero value when absent or malformed, with found
// false) and returns the replacement. Returning ErrSkip leaves the stored
// state untouched.
func Update[T any](ctx context.Context, s *Store, userID, key string, fn func(cur T, found bool) (T, error)) error {
	for range casRetries {
		var (
			raw     string
			version int64
		)
		rowExists := true
		err := s.db.QueryRowContext(ctx,
			`SELECT version, value FROM user_documents WHERE user_id = ? AND key = ?`,
			userID, key).Scan(&version, &raw)
		if errors.Is(err, sql.ErrNoRows) {
			rowExists = false
		} else if err != nil {
			return fmt.Errorf("read document %q: %w", key, err)
		}

		// A row whose envelope or payload does not decode is handed to fn
		// as absent, but the row itself still exists and must be replaced
		// through the version-checked UPDATE, not inserted over.
		var cur T
		found := rowExists
		if rowExists {
			if err := decode(raw, &cur); err != nil {
				var zero T
				cur, found = zero, false
			}
		}

		next, err := fn(cur, found)
		if errors.Is(err, ErrSkip) {
			return nil
		}
		if err != nil {
			return err
		}

		encoded, err := encode(next)
		if err != nil {
			return fmt.Errorf("encode document %q: %w", key, err)
		}

		if rowExists {
			res, err := s.db.ExecContext(ctx, `
				UPDATE user_documents
				SET value = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
				WHERE user_id = ? AND key = ? AND version = ?
			`, encoded, userID, key, version)
			if err != nil {
				return fmt.Errorf("update document %q: %w", key, err)
			}
			if n, _ := res.RowsAffected(); n == 1 {
				return nil
			}
			continue // lost the race, re-read
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT INTO user_documents(user_id, key, version, value) VALUES(?, ?, 1, ?)
		`, userID, key, encoded)
		if err == nil {
			return nil
		}
		if isUniqueViolation(err) {
			continue // another writer created the row first
		}
		return fmt.Errorf("insert document %q: %w", key, err)
	}
	return ErrConflict
}

func encode(val any) (string, error) {
	data, err := json.Marshal(val)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(envelope{V: schemaVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decode(raw string, out any) error {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return ErrNotFound
	}
	if env.V != schemaVersion || env.Data == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
