package web

import (
	"net/http"
	"strings"

	"github.com/example/jeeprep/internal/domain"
)

// handleQuestions renders the practice-question bank.
func (s *Server) handleQuestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := s.db.ListQuestions()
		if err != nil {
			s.serverError(w, "listing questions", err)
			return
		}

		subject := r.FormValue("subject")
		filtered := questions[:0:0]
		for _, q := range questions {
			if subject != "" && string(q.Subject) != subject {
				continue
			}
			filtered = append(filtered, q)
		}

		name := "questions"
		if r.Header.Get("HX-Request") == "true" {
			name = "question_list"
		}
		s.render(w, name, map[string]any{
			"Questions": filtered,
			"Subjects":  domain.Subjects,
			"Subject":   subject,
		})
	}
}

// handleAnswerQuestion grades a submitted answer and re-renders the
// question card with the result. A question takes exactly one attempt.
func (s *Server) handleAnswerQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/questions/"), "/answer")
		answer := strings.TrimSpace(r.PostFormValue("answer"))
		if answer == "" {
			http.Error(w, "An answer cannot be empty", http.StatusBadRequest)
			return
		}

		question, err := s.db.GetQuestion(id)
		if err != nil {
			s.serverError(w, "loading question", err)
			return
		}
		if question == nil {
			http.NotFound(w, r)
			return
		}
		if question.IsAttempted {
			http.Error(w, "Question already attempted", http.StatusConflict)
			return
		}

		if _, err := s.db.RecordAnswer(id, answer); err != nil {
			s.serverError(w, "recording answer", err)
			return
		}
		graded, err := s.db.GetQuestion(id)
		if err != nil {
			s.serverError(w, "reloading question", err)
			return
		}
		s.render(w, "question_card", graded)
	}
}

// handleAdminQuestions lists the bank and accepts new questions.
func (s *Server) handleAdminQuestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			subject := domain.Subject(r.PostFormValue("subject"))
			text := strings.TrimSpace(r.PostFormValue("text"))
			correct := strings.TrimSpace(r.PostFormValue("correct_answer"))
			answerType := r.PostFormValue("answer_type")
			if text == "" || correct == "" || !subject.Valid() ||
				(answerType != domain.AnswerTypeOptions && answerType != domain.AnswerTypeText) {
				http.Error(w, "A question needs text, a subject, an answer type and a correct answer", http.StatusBadRequest)
				return
			}

			var options []string
			if answerType == domain.AnswerTypeOptions {
				for _, line := range strings.Split(r.PostFormValue("options"), "\n") {
					if line = strings.TrimSpace(line); line != "" {
						options = append(options, line)
					}
				}
				if len(options) < 2 {
					http.Error(w, "A multiple-choice question needs at least two options", http.StatusBadRequest)
					return
				}
			}

			_, err := s.db.CreateQuestion(domain.Question{
				Text:          text,
				ImageURL:      strings.TrimSpace(r.PostFormValue("image_url")),
				AnswerType:    answerType,
				Options:       options,
				CorrectAnswer: correct,
				Subject:       subject,
			})
			if err != nil {
				s.serverError(w, "creating question", err)
				return
			}
		}

		questions, err := s.db.ListQuestions()
		if err != nil {
			s.serverError(w, "listing questions", err)
			return
		}
		s.render(w, "admin_questions", map[string]any{
			"Questions": questions,
			"Subjects":  domain.Subjects,
		})
	}
}

// handleAdminDeleteQuestion removes a question from the bank.
func (s *Server) handleAdminDeleteQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete && r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/admin/questions/")
		if err := s.db.DeleteQuestion(id); err != nil {
			s.serverError(w, "deleting question", err)
			return
		}
		s.redirectOrRefresh(w, r, "/admin/questions")
	}
}
