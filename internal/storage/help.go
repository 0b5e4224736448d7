package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

// CreateHelpRequest files a technical help ticket.
func (db *DB) CreateHelpRequest(text, category, imageURL string) (domain.HelpRequest, error) {
	h := domain.HelpRequest{
		ID:        newID(),
		Text:      text,
		Category:  category,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.conn.Exec(`
		INSERT INTO help_requests (id, text, category, image_url, is_addressed, is_cleared, created_at)
		VALUES (?, ?, ?, ?, 0, 0, ?)
	`, h.ID, h.Text, h.Category, nullString(h.ImageURL), h.CreatedAt)
	if err != nil {
		return domain.HelpRequest{}, fmt.Errorf("failed to insert help request: %w", err)
	}
	return h, nil
}

// ListHelpRequests returns every help request, newest first.
func (db *DB) ListHelpRequests() ([]domain.HelpRequest, error) {
	rows, err := db.conn.Query(`
		SELECT id, text, category, image_url, is_addressed, is_cleared, created_at
		FROM help_requests ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list help requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.HelpRequest
	for rows.Next() {
		var h domain.HelpRequest
		var imageURL sql.NullString
		if err := rows.Scan(&h.ID, &h.Text, &h.Category, &imageURL, &h.IsAddressed, &h.IsCleared, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan help request row: %w", err)
		}
		h.ImageURL = imageURL.String
		requests = append(requests, h)
	}
	return requests, rows.Err()
}

// MarkHelpAddressed flags a help request as handled by the admin.
func (db *DB) MarkHelpAddressed(id string) error {
	_, err := db.conn.Exec(`UPDATE help_requests SET is_addressed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark help request %s addressed: %w", id, err)
	}
	return nil
}

// ClearHelpRequest marks a help request as cleared by the student.
func (db *DB) ClearHelpRequest(id string) error {
	_, err := db.conn.Exec(`UPDATE help_requests SET is_cleared = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to clear help request %s: %w", id, err)
	}
	return nil
}
