package storage

import (
	"fmt"

	"github.com/example/jeeprep/internal/domain"
)

// CreateDeck adds a flashcard deck.
func (db *DB) CreateDeck(subject domain.Subject, title string) (domain.Deck, error) {
	d := domain.Deck{ID: newID(), Subject: subject, Title: title}
	_, err := db.conn.Exec(`
		INSERT INTO decks (id, subject, title) VALUES (?, ?, ?)
	`, d.ID, string(d.Subject), d.Title)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("failed to insert deck %q: %w", title, err)
	}
	return d, nil
}

// ListDecks returns all decks ordered by subject then title.
func (db *DB) ListDecks() ([]domain.Deck, error) {
	rows, err := db.conn.Query(`SELECT id, subject, title FROM decks ORDER BY subject, title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.Subject, &d.Title); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// AddFlashcard appends a card to a deck.
func (db *DB) AddFlashcard(deckID, question, answer string, position int) (domain.Flashcard, error) {
	c := domain.Flashcard{ID: newID(), DeckID: deckID, Question: question, Answer: answer, Position: position}
	_, err := db.conn.Exec(`
		INSERT INTO flashcards (id, deck_id, question, answer, position) VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.DeckID, c.Question, c.Answer, c.Position)
	if err != nil {
		return domain.Flashcard{}, fmt.Errorf("failed to insert flashcard into deck %s: %w", deckID, err)
	}
	return c, nil
}

// ListFlashcards returns a deck's cards in presentation order.
func (db *DB) ListFlashcards(deckID string) ([]domain.Flashcard, error) {
	rows, err := db.conn.Query(`
		SELECT id, deck_id, question, answer, position
		FROM flashcards WHERE deck_id = ? ORDER BY position
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flashcards for deck %s: %w", deckID, err)
	}
	defer rows.Close()

	var cards []domain.Flashcard
	for rows.Next() {
		var c domain.Flashcard
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.Position); err != nil {
			return nil, fmt.Errorf("failed to scan flashcard row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// DeleteFlashcard removes one card.
func (db *DB) DeleteFlashcard(id string) error {
	_, err := db.conn.Exec(`DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard %s: %w", id, err)
	}
	return nil
}
