package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Source represents a content source, either a local path or a Git URL,
// holding markdown topic decks.
type Source struct {
	ID         int64
	Path       string
	Type       string // "local" or "git"
	LastSynced sql.NullTime
}

// InsertSource registers a new content source and returns its ID.
func (db *DB) InsertSource(path, sourceType string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO content_sources (path, type) VALUES (?, ?)
	`, path, sourceType)
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return id, nil
}

// GetAllSources retrieves all registered content sources.
func (db *DB) GetAllSources() ([]Source, error) {
	rows, err := db.conn.Query(`
		SELECT id, path, type, last_synced FROM content_sources
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Type, &s.LastSynced); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// DeleteSource unregisters a content source. Topics it imported stay.
func (db *DB) DeleteSource(id int64) error {
	if _, err := db.conn.Exec(`DELETE FROM topic_fingerprints WHERE source_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete fingerprints for source %d: %w", id, err)
	}
	if _, err := db.conn.Exec(`DELETE FROM content_sources WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete source %d: %w", id, err)
	}
	return nil
}

// UpdateSourceLastSynced stamps a source as just synced.
func (db *DB) UpdateSourceLastSynced(sourceID int64) error {
	_, err := db.conn.Exec(`
		UPDATE content_sources SET last_synced = ? WHERE id = ?
	`, time.Now().UTC(), sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last synced for source %d: %w", sourceID, err)
	}
	return nil
}

// InsertFingerprint records that a topic was imported from a source
// under the given content fingerprint.
func (db *DB) InsertFingerprint(fingerprint, topicID string, sourceID int64) error {
	_, err := db.conn.Exec(`
		INSERT INTO topic_fingerprints (fingerprint, topic_id, source_id) VALUES (?, ?, ?)
	`, fingerprint, topicID, sourceID)
	if err != nil {
		return fmt.Errorf("failed to insert fingerprint %s: %w", fingerprint, err)
	}
	return nil
}

// FindTopicIDByFingerprint returns the topic previously imported under
// the fingerprint, or "" when none exists.
func (db *DB) FindTopicIDByFingerprint(fingerprint string) (string, error) {
	var topicID string
	err := db.conn.QueryRow(`
		SELECT topic_id FROM topic_fingerprints WHERE fingerprint = ?
	`, fingerprint).Scan(&topicID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to find fingerprint %s: %w", fingerprint, err)
	}
	return topicID, nil
}
