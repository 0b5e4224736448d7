package storage

import (
	"fmt"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

// CreateLecture adds an entry to the video library.
func (db *DB) CreateLecture(l domain.Lecture) (domain.Lecture, error) {
	l.ID = newID()
	l.CreatedAt = time.Now().UTC()
	_, err := db.conn.Exec(`
		INSERT INTO lectures (id, title, description, subject, channel, duration, video_url, thumbnail_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.Title, l.Description, string(l.Subject), l.Channel, l.Duration, l.VideoURL, l.ThumbnailURL, l.CreatedAt)
	if err != nil {
		return domain.Lecture{}, fmt.Errorf("failed to insert lecture %q: %w", l.Title, err)
	}
	return l, nil
}

// ListLectures returns the video library, newest first.
func (db *DB) ListLectures() ([]domain.Lecture, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, description, subject, channel, duration, video_url, thumbnail_url, created_at
		FROM lectures ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}
	defer rows.Close()

	var lectures []domain.Lecture
	for rows.Next() {
		var l domain.Lecture
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.Subject, &l.Channel, &l.Duration, &l.VideoURL, &l.ThumbnailURL, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lecture row: %w", err)
		}
		lectures = append(lectures, l)
	}
	return lectures, rows.Err()
}

// DeleteLecture removes a lecture from the library.
func (db *DB) DeleteLecture(id string) error {
	_, err := db.conn.Exec(`DELETE FROM lectures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lecture %s: %w", id, err)
	}
	return nil
}
