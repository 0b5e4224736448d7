package revision

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/jeeprep/internal/domain"
)

// recorderFunc adapts a function to the OutcomeRecorder interface.
type recorderFunc func(ctx context.Context, topicID string, outcome domain.Outcome) error

func (f recorderFunc) RecordOutcome(ctx context.Context, topicID string, outcome domain.Outcome) error {
	return f(ctx, topicID, outcome)
}

// collectingRecorder remembers every write, safely across the session's
// fire-and-forget goroutines.
type collectingRecorder struct {
	mu       sync.Mutex
	outcomes map[string]domain.Outcome
	err      error
}

func (r *collectingRecorder) RecordOutcome(_ context.Context, topicID string, outcome domain.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]domain.Outcome)
	}
	r.outcomes[topicID] = outcome
	return r.err
}

func (r *collectingRecorder) recorded() map[string]domain.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.Outcome, len(r.outcomes))
	for k, v := range r.outcomes {
		out[k] = v
	}
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSessionCompletesAfterAllOutcomes(t *testing.T) {
	rec := &collectingRecorder{}
	topics := makeTopics("t", 4, 0, 0)
	s := NewSession(topics, rec, nil)

	if s.State() != Presenting {
		t.Fatalf("initial state = %v, want Presenting", s.State())
	}

	for i := 0; i < 4; i++ {
		if s.Index() != i {
			t.Fatalf("index = %d, want %d", s.Index(), i)
		}
		s.SubmitOutcome(domain.Success)
	}
	if s.State() != Completed {
		t.Errorf("state after %d outcomes = %v, want Completed", 4, s.State())
	}

	waitFor(t, func() bool { return len(rec.recorded()) == 4 })
	for id, outcome := range rec.recorded() {
		if outcome != domain.Success {
			t.Errorf("topic %s recorded %v, want success", id, outcome)
		}
	}
}

func TestSessionEmptyStartsCompleted(t *testing.T) {
	s := NewSession(nil, &collectingRecorder{}, nil)
	if s.State() != Completed {
		t.Errorf("state = %v, want Completed", s.State())
	}
	if _, ok := s.Current(); ok {
		t.Error("empty session should have no current topic")
	}
}

func TestSessionHintToggle(t *testing.T) {
	s := NewSession(makeTopics("t", 2, 0, 0), &collectingRecorder{}, nil)

	for i := 0; i < 5; i++ {
		s.ToggleHint()
	}
	if !s.HintShown() {
		t.Error("hint should be visible after an odd number of toggles")
	}
	if s.Index() != 0 {
		t.Errorf("toggling hints moved the index to %d", s.Index())
	}

	// Advancing always hides the hint again.
	s.SubmitOutcome(domain.Fail)
	if s.HintShown() {
		t.Error("hint should reset on advance")
	}
}

func TestSessionEndAbandons(t *testing.T) {
	rec := &collectingRecorder{}
	s := NewSession(makeTopics("t", 3, 0, 0), rec, nil)

	s.SubmitOutcome(domain.Success)
	s.End()
	if s.State() != Abandoned {
		t.Fatalf("state = %v, want Abandoned", s.State())
	}

	// Nothing more gets through once the session ended.
	s.SubmitOutcome(domain.Success)
	s.ToggleHint()
	if s.Index() != 1 || s.HintShown() {
		t.Error("abandoned session accepted further input")
	}

	waitFor(t, func() bool { return len(rec.recorded()) == 1 })
}

func TestSessionEndAfterCompletionKeepsCompleted(t *testing.T) {
	s := NewSession(makeTopics("t", 1, 0, 0), &collectingRecorder{}, nil)
	s.SubmitOutcome(domain.Success)
	s.End()
	if s.State() != Completed {
		t.Errorf("state = %v, want Completed (End must not downgrade natural completion)", s.State())
	}
}

func TestSessionWriteFailureDoesNotBlock(t *testing.T) {
	errs := make(chan error, 4)
	rec := recorderFunc(func(context.Context, string, domain.Outcome) error {
		return errors.New("store unreachable")
	})
	s := NewSession(makeTopics("t", 2, 0, 0), rec, func(err error) { errs <- err })

	s.SubmitOutcome(domain.Success)
	if s.Index() != 1 {
		t.Fatal("failed write must not stall the advance")
	}
	s.SubmitOutcome(domain.Fail)
	if s.State() != Completed {
		t.Fatal("session should complete regardless of write failures")
	}

	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			if err == nil {
				t.Error("notify received nil error")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("notify callback never received the write failure")
		}
	}
}
