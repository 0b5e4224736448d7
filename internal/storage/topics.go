package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

const topicColumns = `id, subject, chapter_name, topic_name, hints, hints_image_url,
	recall_success, recall_fails, last_reviewed`

func scanTopic(row interface{ Scan(...any) error }) (domain.RevisionTopic, error) {
	var t domain.RevisionTopic
	var imageURL sql.NullString
	err := row.Scan(
		&t.ID,
		&t.Subject,
		&t.ChapterName,
		&t.TopicName,
		&t.Hints,
		&imageURL,
		&t.RecallSuccess,
		&t.RecallFails,
		&t.LastReviewed,
	)
	if err != nil {
		return domain.RevisionTopic{}, err
	}
	t.HintsImageURL = imageURL.String
	return t, nil
}

// ListTopics returns the full unfiltered topic collection.
func (db *DB) ListTopics() ([]domain.RevisionTopic, error) {
	rows, err := db.conn.Query(`
		SELECT ` + topicColumns + `
		FROM revision_topics
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list revision topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.RevisionTopic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revision topic row: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// GetTopic retrieves a single topic by id, or nil when it does not exist.
func (db *DB) GetTopic(id string) (*domain.RevisionTopic, error) {
	row := db.conn.QueryRow(`
		SELECT `+topicColumns+`
		FROM revision_topics WHERE id = ?
	`, id)
	t, err := scanTopic(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get topic %s: %w", id, err)
	}
	return &t, nil
}

// CreateTopic inserts a new revision topic with zeroed recall counters
// and returns it with its assigned id.
func (db *DB) CreateTopic(f domain.TopicFields) (domain.RevisionTopic, error) {
	t := domain.RevisionTopic{
		ID:            newID(),
		Subject:       f.Subject,
		ChapterName:   f.ChapterName,
		TopicName:     f.TopicName,
		Hints:         f.Hints,
		HintsImageURL: f.HintsImageURL,
		LastReviewed:  time.Now().UTC(),
	}
	_, err := db.conn.Exec(`
		INSERT INTO revision_topics (id, subject, chapter_name, topic_name, hints, hints_image_url,
			recall_success, recall_fails, last_reviewed)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0, ?)
	`,
		t.ID,
		string(t.Subject),
		t.ChapterName,
		t.TopicName,
		t.Hints,
		nullString(t.HintsImageURL),
		t.LastReviewed,
	)
	if err != nil {
		return domain.RevisionTopic{}, fmt.Errorf("failed to insert topic %q: %w", f.TopicName, err)
	}
	return t, nil
}

// UpdateTopicFields rewrites the editable fields of a topic. The recall
// counters are untouchable from here.
func (db *DB) UpdateTopicFields(id string, f domain.TopicFields) error {
	res, err := db.conn.Exec(`
		UPDATE revision_topics
		SET subject = ?, chapter_name = ?, topic_name = ?, hints = ?, hints_image_url = ?, last_reviewed = ?
		WHERE id = ?
	`,
		string(f.Subject),
		f.ChapterName,
		f.TopicName,
		f.Hints,
		nullString(f.HintsImageURL),
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update topic %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update topic %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("topic %s not found", id)
	}
	return nil
}

// RecordOutcome increments exactly one recall counter and bumps the
// review timestamp, in a single statement. Concurrent sessions racing on
// the same topic resolve last-write-wins; there is no locking here.
func (db *DB) RecordOutcome(ctx context.Context, topicID string, outcome domain.Outcome) error {
	successInc, failInc := 0, 1
	if outcome == domain.Success {
		successInc, failInc = 1, 0
	}
	res, err := db.conn.ExecContext(ctx, `
		UPDATE revision_topics
		SET recall_success = recall_success + ?, recall_fails = recall_fails + ?, last_reviewed = ?
		WHERE id = ?
	`, successInc, failInc, time.Now().UTC(), topicID)
	if err != nil {
		return fmt.Errorf("failed to record %s for topic %s: %w", outcome, topicID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record %s for topic %s: %w", outcome, topicID, err)
	}
	if n == 0 {
		return fmt.Errorf("topic %s not found", topicID)
	}
	return nil
}

// Mistakes returns topics the student keeps forgetting: more fails than
// successes with at least one fail, worst first. Feeds the AI feedback
// summary.
func (db *DB) Mistakes() ([]domain.RevisionTopic, error) {
	rows, err := db.conn.Query(`
		SELECT ` + topicColumns + `
		FROM revision_topics
		WHERE recall_fails > recall_success AND recall_fails > 0
		ORDER BY recall_fails DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list revision mistakes: %w", err)
	}
	defer rows.Close()

	var topics []domain.RevisionTopic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revision mistake row: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
