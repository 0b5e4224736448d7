package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

// AddMoodEntry records a mood check-in.
func (db *DB) AddMoodEntry(mood, note string) (domain.MoodEntry, error) {
	e := domain.MoodEntry{ID: newID(), Mood: mood, Note: note, CreatedAt: time.Now().UTC()}
	_, err := db.conn.Exec(`
		INSERT INTO mood_entries (id, mood, note, created_at) VALUES (?, ?, ?, ?)
	`, e.ID, e.Mood, e.Note, e.CreatedAt)
	if err != nil {
		return domain.MoodEntry{}, fmt.Errorf("failed to insert mood entry: %w", err)
	}
	return e, nil
}

// RecentMoodEntries returns the n most recent mood check-ins.
func (db *DB) RecentMoodEntries(n int) ([]domain.MoodEntry, error) {
	rows, err := db.conn.Query(`
		SELECT id, mood, note, created_at FROM mood_entries
		ORDER BY created_at DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.MoodEntry
	for rows.Next() {
		var e domain.MoodEntry
		if err := rows.Scan(&e.ID, &e.Mood, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddMessages bulk-inserts already-validated message payloads into a
// named collection. Payloads arrive as canonical JSON from the upload
// boundary; nothing unvalidated reaches this call.
func (db *DB) AddMessages(collection string, payloads []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin message batch: %w", err)
	}
	now := time.Now().UTC()
	for _, payload := range payloads {
		if _, err := tx.Exec(`
			INSERT INTO mood_messages (id, collection, payload, created_at) VALUES (?, ?, ?, ?)
		`, newID(), collection, payload, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert message into %s: %w", collection, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit message batch: %w", err)
	}
	return nil
}

// RandomMessage picks one payload from a collection, or "" when the
// collection is empty.
func (db *DB) RandomMessage(collection string) (string, error) {
	var payload string
	err := db.conn.QueryRow(`
		SELECT payload FROM mood_messages WHERE collection = ? ORDER BY RANDOM() LIMIT 1
	`, collection).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to pick message from %s: %w", collection, err)
	}
	return payload, nil
}

// MessageCollections lists the known collection names with their sizes.
func (db *DB) MessageCollections() (map[string]int, error) {
	rows, err := db.conn.Query(`
		SELECT collection, COUNT(*) FROM mood_messages GROUP BY collection
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list message collections: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}
