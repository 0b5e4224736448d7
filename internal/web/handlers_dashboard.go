package web

import (
	"net/http"

	"github.com/example/jeeprep/internal/feedback"
	"github.com/example/jeeprep/internal/revision"
)

// handleDashboard renders the home page overview.
func (s *Server) handleDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		topics, err := s.db.ListTopics()
		if err != nil {
			s.serverError(w, "listing topics for dashboard", err)
			return
		}
		decks, err := s.db.ListDeckProgress()
		if err != nil {
			s.serverError(w, "listing deck progress", err)
			return
		}
		statuses, err := s.db.ListSyllabusStatus()
		if err != nil {
			s.serverError(w, "listing syllabus status", err)
			return
		}
		moods, err := s.db.RecentMoodEntries(5)
		if err != nil {
			s.serverError(w, "listing recent moods", err)
			return
		}

		completed := 0
		for _, st := range statuses {
			if st.Completed {
				completed++
			}
		}

		pyq, err := s.db.ListPyqStatus()
		if err != nil {
			s.serverError(w, "listing pyq status", err)
			return
		}
		pyqCompleted := 0
		for _, p := range pyq {
			if p.Completed {
				pyqCompleted++
			}
		}

		s.render(w, "dashboard", map[string]any{
			"StudentName":       s.opts.StudentName,
			"Recall":            revision.Aggregate(topics),
			"Decks":             decks,
			"SyllabusCompleted": completed,
			"SyllabusTracked":   len(statuses),
			"PyqCompleted":      pyqCompleted,
			"PyqTracked":        len(statuses),
			"Moods":             moods,
			"FeedbackEnabled":   s.feedback != nil,
		})
	}
}

// handleFeedback generates the AI study summary on demand.
func (s *Server) handleFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.feedback == nil {
			s.render(w, "feedback_summary", map[string]any{
				"Error": "AI feedback is not configured.",
			})
			return
		}

		activity, err := feedback.Collect(s.db, s.opts.StudentName)
		if err != nil {
			s.serverError(w, "collecting activity for feedback", err)
			return
		}
		summary, err := s.feedback.Generate(r.Context(), activity)
		if err != nil {
			s.render(w, "feedback_summary", map[string]any{
				"Error": "Could not generate feedback right now. Try again later.",
			})
			return
		}
		s.render(w, "feedback_summary", map[string]any{"Summary": summary})
	}
}
