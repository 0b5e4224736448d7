package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

// SetSyllabusStatus upserts the completion flag for one syllabus topic.
func (db *DB) SetSyllabusStatus(topicKey string, completed bool) error {
	_, err := db.conn.Exec(`
		INSERT INTO syllabus_progress (topic_key, completed, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(topic_key) DO UPDATE SET completed = excluded.completed, last_updated = excluded.last_updated
	`, topicKey, boolInt(completed), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set syllabus status for %s: %w", topicKey, err)
	}
	return nil
}

// ListSyllabusStatus returns every recorded syllabus completion flag.
func (db *DB) ListSyllabusStatus() ([]domain.SyllabusStatus, error) {
	rows, err := db.conn.Query(`
		SELECT topic_key, completed, last_updated FROM syllabus_progress
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list syllabus progress: %w", err)
	}
	defer rows.Close()

	var statuses []domain.SyllabusStatus
	for rows.Next() {
		var s domain.SyllabusStatus
		if err := rows.Scan(&s.Key, &s.Completed, &s.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan syllabus progress row: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

// RecentlyCompletedSyllabus returns the topic names of the n most
// recently completed syllabus entries. The name is the last segment of
// the "Subject-Chapter-Topic" key.
func (db *DB) RecentlyCompletedSyllabus(n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := db.conn.Query(`
		SELECT topic_key FROM syllabus_progress
		WHERE completed = 1
		ORDER BY last_updated DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list recently completed syllabus: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan syllabus key: %w", err)
		}
		if i := strings.LastIndex(key, "-"); i >= 0 {
			key = key[i+1:]
		}
		names = append(names, key)
	}
	return names, rows.Err()
}

// SetPyqStatus upserts the PYQ completion flag for one syllabus topic.
func (db *DB) SetPyqStatus(topicKey string, completed bool) error {
	_, err := db.conn.Exec(`
		INSERT INTO pyq_progress (topic_key, completed, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(topic_key) DO UPDATE SET completed = excluded.completed, last_updated = excluded.last_updated
	`, topicKey, boolInt(completed), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set pyq status for %s: %w", topicKey, err)
	}
	return nil
}

// ListPyqStatus returns every recorded PYQ completion flag.
func (db *DB) ListPyqStatus() ([]domain.PyqStatus, error) {
	rows, err := db.conn.Query(`
		SELECT topic_key, completed, last_updated FROM pyq_progress
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pyq progress: %w", err)
	}
	defer rows.Close()

	var statuses []domain.PyqStatus
	for rows.Next() {
		var s domain.PyqStatus
		if err := rows.Scan(&s.Key, &s.Completed, &s.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan pyq progress row: %w", err)
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

// SetDeckProgress upserts the dashboard summary for one flashcard deck.
func (db *DB) SetDeckProgress(deckID string, subject domain.Subject, completed, total int) error {
	_, err := db.conn.Exec(`
		INSERT INTO deck_progress (deck_id, subject, completed, total, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(deck_id) DO UPDATE SET
			subject = excluded.subject,
			completed = excluded.completed,
			total = excluded.total,
			last_updated = excluded.last_updated
	`, deckID, string(subject), completed, total, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set deck progress for %s: %w", deckID, err)
	}
	return nil
}

// ListDeckProgress returns the dashboard summaries for all decks.
func (db *DB) ListDeckProgress() ([]domain.DeckProgress, error) {
	rows, err := db.conn.Query(`
		SELECT deck_id, subject, completed, total, last_updated FROM deck_progress
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck progress: %w", err)
	}
	defer rows.Close()

	var progress []domain.DeckProgress
	for rows.Next() {
		var p domain.DeckProgress
		if err := rows.Scan(&p.DeckID, &p.Subject, &p.Completed, &p.Total, &p.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan deck progress row: %w", err)
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}
