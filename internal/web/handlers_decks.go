package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/example/jeeprep/internal/domain"
)

// handleDecks lists the flashcard decks with their recorded progress.
func (s *Server) handleDecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decks, err := s.db.ListDecks()
		if err != nil {
			s.serverError(w, "listing decks", err)
			return
		}
		progress, err := s.db.ListDeckProgress()
		if err != nil {
			s.serverError(w, "listing deck progress", err)
			return
		}

		byDeck := make(map[string]domain.DeckProgress, len(progress))
		for _, p := range progress {
			byDeck[p.DeckID] = p
		}
		type deckRow struct {
			Deck     domain.Deck
			Progress domain.DeckProgress
			Started  bool
		}
		rows := make([]deckRow, 0, len(decks))
		for _, d := range decks {
			p, ok := byDeck[d.ID]
			rows = append(rows, deckRow{Deck: d, Progress: p, Started: ok})
		}
		s.render(w, "decks", map[string]any{"Rows": rows})
	}
}

// handleDeck serves one deck: the practice page on GET, a progress
// checkpoint on POST to /decks/{id}/progress.
func (s *Server) handleDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/decks/")

		if r.Method == http.MethodPost && strings.HasSuffix(rest, "/progress") {
			s.saveDeckProgress(w, r, strings.TrimSuffix(rest, "/progress"))
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		deck, cards, ok := s.loadDeck(w, rest)
		if !ok {
			return
		}
		s.render(w, "deck_practice", map[string]any{"Deck": deck, "Cards": cards})
	}
}

// saveDeckProgress records how far through the deck the student got.
// The total always comes from the current card count, not the form.
func (s *Server) saveDeckProgress(w http.ResponseWriter, r *http.Request, id string) {
	deck, cards, ok := s.loadDeck(w, id)
	if !ok {
		return
	}

	completed, err := strconv.Atoi(r.PostFormValue("completed"))
	if err != nil || completed < 0 {
		http.Error(w, "Completed count must be a non-negative number", http.StatusBadRequest)
		return
	}
	if completed > len(cards) {
		completed = len(cards)
	}

	if err := s.db.SetDeckProgress(deck.ID, deck.Subject, completed, len(cards)); err != nil {
		s.serverError(w, "saving deck progress", err)
		return
	}
	s.render(w, "deck_progress_saved", map[string]any{
		"Completed": completed, "Total": len(cards),
	})
}

func (s *Server) loadDeck(w http.ResponseWriter, id string) (domain.Deck, []domain.Flashcard, bool) {
	decks, err := s.db.ListDecks()
	if err != nil {
		s.serverError(w, "listing decks", err)
		return domain.Deck{}, nil, false
	}
	for _, d := range decks {
		if d.ID == id {
			cards, err := s.db.ListFlashcards(id)
			if err != nil {
				s.serverError(w, "listing flashcards", err)
				return domain.Deck{}, nil, false
			}
			return d, cards, true
		}
	}
	http.Error(w, "Deck not found", http.StatusNotFound)
	return domain.Deck{}, nil, false
}

// handleAdminDecks lists decks and accepts new decks and cards.
func (s *Server) handleAdminDecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.PostFormValue("action") {
			case "create_deck":
				subject := domain.Subject(r.PostFormValue("subject"))
				title := strings.TrimSpace(r.PostFormValue("title"))
				if title == "" || !subject.Valid() {
					http.Error(w, "A deck needs a title and a subject", http.StatusBadRequest)
					return
				}
				if _, err := s.db.CreateDeck(subject, title); err != nil {
					s.serverError(w, "creating deck", err)
					return
				}
			case "add_card":
				deckID := r.PostFormValue("deck_id")
				question := strings.TrimSpace(r.PostFormValue("question"))
				answer := strings.TrimSpace(r.PostFormValue("answer"))
				if deckID == "" || question == "" || answer == "" {
					http.Error(w, "A card needs a deck, a question and an answer", http.StatusBadRequest)
					return
				}
				cards, err := s.db.ListFlashcards(deckID)
				if err != nil {
					s.serverError(w, "listing flashcards", err)
					return
				}
				if _, err := s.db.AddFlashcard(deckID, question, answer, len(cards)); err != nil {
					s.serverError(w, "adding flashcard", err)
					return
				}
			default:
				http.Error(w, "Unknown action", http.StatusBadRequest)
				return
			}
		}

		decks, err := s.db.ListDecks()
		if err != nil {
			s.serverError(w, "listing decks", err)
			return
		}
		type deckRow struct {
			Deck  domain.Deck
			Cards []domain.Flashcard
		}
		rows := make([]deckRow, 0, len(decks))
		for _, d := range decks {
			cards, err := s.db.ListFlashcards(d.ID)
			if err != nil {
				s.serverError(w, "listing flashcards", err)
				return
			}
			rows = append(rows, deckRow{Deck: d, Cards: cards})
		}
		s.render(w, "admin_decks", map[string]any{
			"Rows": rows, "Subjects": domain.Subjects,
		})
	}
}

// handleAdminDeleteFlashcard removes one card from a deck.
func (s *Server) handleAdminDeleteFlashcard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete && r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/admin/decks/cards/")
		if err := s.db.DeleteFlashcard(id); err != nil {
			s.serverError(w, "deleting flashcard", err)
			return
		}
		s.redirectOrRefresh(w, r, "/admin/decks")
	}
}
