package revision

import (
	"context"

	"github.com/example/jeeprep/internal/domain"
)

// OutcomeRecorder persists the result of one recall attempt. The session
// treats the call as best-effort: a failure is reported, never retried,
// and never blocks the session.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, topicID string, outcome domain.Outcome) error
}

// State is the lifecycle phase of a recall session.
type State int

const (
	// Presenting shows the current topic, with or without its hint.
	Presenting State = iota
	// Completed means every topic in the session received an outcome.
	Completed
	// Abandoned means the user ended the session early; remaining topics
	// were discarded without recording anything.
	Abandoned
)

// Session walks an already-sampled topic list one topic at a time. The
// list is fixed at creation; nothing re-samples mid-session. Sessions
// live only in memory, so a server restart simply loses them.
type Session struct {
	topics    []domain.RevisionTopic
	index     int
	hintShown bool
	state     State
	recorder  OutcomeRecorder
	notify    func(error)
}

// NewSession builds a session over topics. notify receives persistence
// errors from SubmitOutcome and may be nil. An empty topic list starts
// out already completed.
func NewSession(topics []domain.RevisionTopic, recorder OutcomeRecorder, notify func(error)) *Session {
	s := &Session{topics: topics, recorder: recorder, notify: notify}
	if len(topics) == 0 {
		s.state = Completed
	}
	return s
}

// State returns the session's current phase.
func (s *Session) State() State { return s.state }

// Len returns the fixed size of the session.
func (s *Session) Len() int { return len(s.topics) }

// Index returns the 0-based position of the current topic.
func (s *Session) Index() int { return s.index }

// HintShown reports whether the hint for the current topic is visible.
func (s *Session) HintShown() bool { return s.hintShown }

// Current returns the topic being presented, or false once the session
// has ended.
func (s *Session) Current() (domain.RevisionTopic, bool) {
	if s.state != Presenting {
		return domain.RevisionTopic{}, false
	}
	return s.topics[s.index], true
}

// ToggleHint flips hint visibility. It changes nothing else and is
// ignored once the session has ended.
func (s *Session) ToggleHint() {
	if s.state != Presenting {
		return
	}
	s.hintShown = !s.hintShown
}

// SubmitOutcome records the result for the current topic and advances.
// The write is fired off on its own goroutine: the session does not wait
// on it, and a failure reaches the notify callback while the session has
// already moved on. Submitting after the session ended is a no-op.
func (s *Session) SubmitOutcome(outcome domain.Outcome) {
	if s.state != Presenting {
		return
	}
	topicID := s.topics[s.index].ID
	go func() {
		if err := s.recorder.RecordOutcome(context.Background(), topicID, outcome); err != nil && s.notify != nil {
			s.notify(err)
		}
	}()

	s.hintShown = false
	s.index++
	if s.index == len(s.topics) {
		s.state = Completed
	}
}

// End abandons the session. Remaining topics are discarded with nothing
// recorded for them. Ending an already-finished session keeps its state,
// so natural completion is not downgraded to abandonment.
func (s *Session) End() {
	if s.state == Presenting {
		s.state = Abandoned
	}
}

// Done reports whether the session reached a terminal state.
func (s *Session) Done() bool { return s.state != Presenting }
