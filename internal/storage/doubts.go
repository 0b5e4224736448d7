package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

// CreateDoubt files a new doubt ticket and returns it with its id.
func (db *DB) CreateDoubt(text string, subject domain.Subject, imageURL string) (domain.Doubt, error) {
	d := domain.Doubt{
		ID:        newID(),
		Text:      text,
		Subject:   subject,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.conn.Exec(`
		INSERT INTO doubts (id, text, subject, image_url, is_addressed, is_cleared, addressed_text, created_at)
		VALUES (?, ?, ?, ?, 0, 0, '', ?)
	`, d.ID, d.Text, string(d.Subject), nullString(d.ImageURL), d.CreatedAt)
	if err != nil {
		return domain.Doubt{}, fmt.Errorf("failed to insert doubt: %w", err)
	}
	return d, nil
}

// ListDoubts returns every doubt, newest first.
func (db *DB) ListDoubts() ([]domain.Doubt, error) {
	return db.queryDoubts(`
		SELECT id, text, subject, image_url, is_addressed, is_cleared, addressed_text, created_at
		FROM doubts ORDER BY created_at DESC
	`)
}

// ListDoubtsByStatus filters doubts on whether they have been answered.
func (db *DB) ListDoubtsByStatus(addressed bool) ([]domain.Doubt, error) {
	return db.queryDoubts(`
		SELECT id, text, subject, image_url, is_addressed, is_cleared, addressed_text, created_at
		FROM doubts WHERE is_addressed = ? ORDER BY created_at DESC
	`, boolInt(addressed))
}

func (db *DB) queryDoubts(query string, args ...any) ([]domain.Doubt, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list doubts: %w", err)
	}
	defer rows.Close()

	var doubts []domain.Doubt
	for rows.Next() {
		var d domain.Doubt
		var imageURL sql.NullString
		if err := rows.Scan(&d.ID, &d.Text, &d.Subject, &imageURL, &d.IsAddressed, &d.IsCleared, &d.AddressedText, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan doubt row: %w", err)
		}
		d.ImageURL = imageURL.String
		doubts = append(doubts, d)
	}
	return doubts, rows.Err()
}

// AnswerDoubt records the admin's answer and marks the doubt addressed.
func (db *DB) AnswerDoubt(id, answer string) error {
	_, err := db.conn.Exec(`
		UPDATE doubts SET is_addressed = 1, addressed_text = ? WHERE id = ?
	`, answer, id)
	if err != nil {
		return fmt.Errorf("failed to answer doubt %s: %w", id, err)
	}
	return nil
}

// UpdateDoubtAnswer revises the answer text on an already-addressed doubt.
func (db *DB) UpdateDoubtAnswer(id, answer string) error {
	_, err := db.conn.Exec(`
		UPDATE doubts SET addressed_text = ? WHERE id = ?
	`, answer, id)
	if err != nil {
		return fmt.Errorf("failed to update answer for doubt %s: %w", id, err)
	}
	return nil
}

// ClearDoubt marks a doubt as cleared by the student.
func (db *DB) ClearDoubt(id string) error {
	_, err := db.conn.Exec(`UPDATE doubts SET is_cleared = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to clear doubt %s: %w", id, err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
