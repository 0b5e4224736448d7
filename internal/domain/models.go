package domain

import "time"

// Doubt is a question ticket raised by the student and answered from the
// admin area.
type Doubt struct {
	ID            string
	Text          string
	Subject       Subject
	ImageURL      string
	IsAddressed   bool
	IsCleared     bool
	AddressedText string
	CreatedAt     time.Time
}

// HelpRequest is a technical (non-academic) help ticket.
type HelpRequest struct {
	ID          string
	Text        string
	Category    string
	ImageURL    string
	IsAddressed bool
	IsCleared   bool
	CreatedAt   time.Time
}

// Lecture is an entry in the video library. VideoURL and ThumbnailURL are
// opaque handles into whatever serves the media.
type Lecture struct {
	ID           string
	Title        string
	Description  string
	Subject      Subject
	Channel      string
	Duration     string
	VideoURL     string
	ThumbnailURL string
	CreatedAt    time.Time
}

// SyllabusStatus tracks completion of one syllabus topic. The key is the
// "Subject-Chapter-Topic" string the checklist renders from.
type SyllabusStatus struct {
	Key         string
	Completed   bool
	LastUpdated time.Time
}

// DeckProgress is the dashboard summary for one flashcard deck.
type DeckProgress struct {
	DeckID      string
	Subject     Subject
	Completed   int
	Total       int
	LastUpdated time.Time
}

// Flashcard is a single question/answer pair inside a deck.
type Flashcard struct {
	ID       string
	DeckID   string
	Question string
	Answer   string
	Position int
}

// Deck groups flashcards under a subject and chapter.
type Deck struct {
	ID      string
	Subject Subject
	Title   string
}

// Question is one practice-bank entry. AnswerType selects the input the
// bank renders: "options" offers the Options list, "text" a free-text
// field. A question locks after its first attempt; UserAnswer and
// IsCorrect are only meaningful once IsAttempted is set.
type Question struct {
	ID            string
	Text          string
	ImageURL      string
	AnswerType    string
	Options       []string
	CorrectAnswer string
	Subject       Subject
	IsAttempted   bool
	UserAnswer    string
	IsCorrect     bool
}

// AnswerTypeOptions and AnswerTypeText are the two Question input modes.
const (
	AnswerTypeOptions = "options"
	AnswerTypeText    = "text"
)

// PyqStatus tracks whether the previous-year questions for one syllabus
// topic have been worked through. Keys match SyllabusStatus keys.
type PyqStatus struct {
	Key         string
	Completed   bool
	LastUpdated time.Time
}

// MoodEntry is a single mood check-in from the student.
type MoodEntry struct {
	ID        string
	Mood      string
	Note      string
	CreatedAt time.Time
}
