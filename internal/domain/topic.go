package domain

import "time"

// Subject is the closed set of exam subjects.
type Subject string

const (
	Physics   Subject = "Physics"
	Chemistry Subject = "Chemistry"
	Maths     Subject = "Maths"
)

// Subjects lists every valid subject, in display order.
var Subjects = []Subject{Physics, Chemistry, Maths}

// Valid reports whether s is one of the known subjects.
func (s Subject) Valid() bool {
	switch s {
	case Physics, Chemistry, Maths:
		return true
	}
	return false
}

// Outcome is the result of a single recall attempt.
type Outcome int

const (
	Fail Outcome = iota
	Success
)

// ParseOutcome maps the form value submitted by the session UI.
func ParseOutcome(s string) (Outcome, bool) {
	switch s {
	case "success":
		return Success, true
	case "fail":
		return Fail, true
	}
	return 0, false
}

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "fail"
}

// RevisionTopic is a single recallable fact or unit. The id is assigned by
// the storage layer on create and never changes. RecallSuccess and
// RecallFails start at zero and only ever grow.
type RevisionTopic struct {
	ID            string
	Subject       Subject
	ChapterName   string
	TopicName     string
	Hints         string
	HintsImageURL string
	RecallSuccess int
	RecallFails   int
	LastReviewed  time.Time
}

// Attempts is the total number of recorded recall attempts.
func (t RevisionTopic) Attempts() int {
	return t.RecallSuccess + t.RecallFails
}

// TopicFields is the editable subset of a revision topic. Counters are
// deliberately absent: edits never touch them.
type TopicFields struct {
	Subject       Subject
	ChapterName   string
	TopicName     string
	Hints         string
	HintsImageURL string
}
