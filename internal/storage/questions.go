package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

// CreateQuestion adds a fresh, unattempted question to the bank.
func (db *DB) CreateQuestion(q domain.Question) (domain.Question, error) {
	q.ID = newID()
	q.IsAttempted = false
	q.UserAnswer = ""
	q.IsCorrect = false

	options, err := json.Marshal(q.Options)
	if err != nil {
		return domain.Question{}, fmt.Errorf("failed to encode options: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO questions (id, text, image_url, answer_type, options, correct_answer, subject, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.Text, q.ImageURL, q.AnswerType, string(options), q.CorrectAnswer, string(q.Subject), time.Now().UTC())
	if err != nil {
		return domain.Question{}, fmt.Errorf("failed to create question: %w", err)
	}
	return q, nil
}

// ListQuestions returns the whole bank, newest first.
func (db *DB) ListQuestions() ([]domain.Question, error) {
	return db.queryQuestions(`
		SELECT id, text, image_url, answer_type, options, correct_answer, subject, is_attempted, user_answer, is_correct
		FROM questions ORDER BY created_at DESC
	`)
}

// GetQuestion returns one question, or nil when the id is unknown.
func (db *DB) GetQuestion(id string) (*domain.Question, error) {
	questions, err := db.queryQuestions(`
		SELECT id, text, image_url, answer_type, options, correct_answer, subject, is_attempted, user_answer, is_correct
		FROM questions WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}
	return &questions[0], nil
}

// RecordAnswer grades an answer against the stored correct answer and
// locks the question. A second attempt on the same question is an error.
func (db *DB) RecordAnswer(id, answer string) (bool, error) {
	q, err := db.GetQuestion(id)
	if err != nil {
		return false, err
	}
	if q == nil {
		return false, fmt.Errorf("question %s not found", id)
	}
	if q.IsAttempted {
		return false, fmt.Errorf("question %s already attempted", id)
	}

	correct := answer == q.CorrectAnswer
	_, err = db.conn.Exec(`
		UPDATE questions SET is_attempted = 1, user_answer = ?, is_correct = ?
		WHERE id = ?
	`, answer, boolInt(correct), id)
	if err != nil {
		return false, fmt.Errorf("failed to record answer for question %s: %w", id, err)
	}
	return correct, nil
}

// QuestionMistakes returns the questions attempted and answered wrong.
func (db *DB) QuestionMistakes() ([]domain.Question, error) {
	return db.queryQuestions(`
		SELECT id, text, image_url, answer_type, options, correct_answer, subject, is_attempted, user_answer, is_correct
		FROM questions WHERE is_attempted = 1 AND is_correct = 0
		ORDER BY created_at DESC
	`)
}

// DeleteQuestion removes a question from the bank.
func (db *DB) DeleteQuestion(id string) error {
	if _, err := db.conn.Exec(`DELETE FROM questions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	return nil
}

func (db *DB) queryQuestions(query string, args ...any) ([]domain.Question, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var options string
		if err := rows.Scan(&q.ID, &q.Text, &q.ImageURL, &q.AnswerType, &options,
			&q.CorrectAnswer, &q.Subject, &q.IsAttempted, &q.UserAnswer, &q.IsCorrect); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options for question %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
