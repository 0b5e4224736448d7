package web

import (
	"net/http"
	"strings"

	"github.com/example/jeeprep/internal/domain"
	"github.com/example/jeeprep/internal/mood"
)

// handleSyllabus renders the checklist and accepts toggle updates. Each
// entry carries two flags: the topic itself and its previous-year
// questions, toggled by kind=pyq.
func (s *Server) handleSyllabus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			key := r.PostFormValue("key")
			if key == "" {
				http.Error(w, "Missing syllabus key", http.StatusBadRequest)
				return
			}
			completed := r.PostFormValue("completed") == "true"
			var err error
			if r.PostFormValue("kind") == "pyq" {
				err = s.db.SetPyqStatus(key, completed)
			} else {
				err = s.db.SetSyllabusStatus(key, completed)
			}
			if err != nil {
				s.serverError(w, "updating syllabus status", err)
				return
			}
		}

		statuses, err := s.db.ListSyllabusStatus()
		if err != nil {
			s.serverError(w, "listing syllabus status", err)
			return
		}
		pyq, err := s.db.ListPyqStatus()
		if err != nil {
			s.serverError(w, "listing pyq status", err)
			return
		}
		pyqDone := make(map[string]bool, len(pyq))
		for _, p := range pyq {
			if p.Completed {
				pyqDone[p.Key] = true
			}
		}

		type row struct {
			Key       string
			Completed bool
			PyqDone   bool
		}
		rows := make([]row, 0, len(statuses))
		for _, st := range statuses {
			rows = append(rows, row{Key: st.Key, Completed: st.Completed, PyqDone: pyqDone[st.Key]})
		}

		name := "syllabus"
		if r.Header.Get("HX-Request") == "true" {
			name = "syllabus_list"
		}
		s.render(w, name, map[string]any{"Rows": rows})
	}
}

// handleDoubts shows the student's doubts and accepts new ones.
func (s *Server) handleDoubts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			text := strings.TrimSpace(r.PostFormValue("text"))
			subject := domain.Subject(r.PostFormValue("subject"))
			if text == "" || !subject.Valid() {
				http.Error(w, "A doubt needs text and a subject", http.StatusBadRequest)
				return
			}
			if _, err := s.db.CreateDoubt(text, subject, strings.TrimSpace(r.PostFormValue("image_url"))); err != nil {
				s.serverError(w, "creating doubt", err)
				return
			}
		}

		doubts, err := s.db.ListDoubts()
		if err != nil {
			s.serverError(w, "listing doubts", err)
			return
		}
		name := "doubts"
		if r.Header.Get("HX-Request") == "true" {
			name = "doubt_list"
		}
		s.render(w, name, map[string]any{"Doubts": doubts, "Subjects": domain.Subjects})
	}
}

// handleDoubtAction clears a doubt the student is done with.
func (s *Server) handleDoubtAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/doubts/"), "/clear")
		if err := s.db.ClearDoubt(id); err != nil {
			s.serverError(w, "clearing doubt", err)
			return
		}
		s.redirectOrRefresh(w, r, "/doubts")
	}
}

// handleHelp shows technical help requests and accepts new ones.
func (s *Server) handleHelp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			text := strings.TrimSpace(r.PostFormValue("text"))
			if text == "" {
				http.Error(w, "A help request needs text", http.StatusBadRequest)
				return
			}
			category := strings.TrimSpace(r.PostFormValue("category"))
			if _, err := s.db.CreateHelpRequest(text, category, strings.TrimSpace(r.PostFormValue("image_url"))); err != nil {
				s.serverError(w, "creating help request", err)
				return
			}
		}

		requests, err := s.db.ListHelpRequests()
		if err != nil {
			s.serverError(w, "listing help requests", err)
			return
		}
		name := "help"
		if r.Header.Get("HX-Request") == "true" {
			name = "help_list"
		}
		s.render(w, name, map[string]any{"Requests": requests})
	}
}

// handleHelpAction clears a help request.
func (s *Server) handleHelpAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/help/"), "/clear")
		if err := s.db.ClearHelpRequest(id); err != nil {
			s.serverError(w, "clearing help request", err)
			return
		}
		s.redirectOrRefresh(w, r, "/help")
	}
}

// handleLectures renders the read-only video library.
func (s *Server) handleLectures() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lectures, err := s.db.ListLectures()
		if err != nil {
			s.serverError(w, "listing lectures", err)
			return
		}
		s.render(w, "lectures", map[string]any{"Lectures": lectures})
	}
}

// handleMood accepts a mood check-in and answers with a motivational
// message from the matching collection, if one exists.
func (s *Server) handleMood() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			entries, err := s.db.RecentMoodEntries(10)
			if err != nil {
				s.serverError(w, "listing mood entries", err)
				return
			}
			s.render(w, "mood", map[string]any{"Entries": entries})
		case http.MethodPost:
			m := strings.TrimSpace(r.PostFormValue("mood"))
			if m == "" {
				http.Error(w, "Pick a mood first", http.StatusBadRequest)
				return
			}
			if _, err := s.db.AddMoodEntry(m, strings.TrimSpace(r.PostFormValue("note"))); err != nil {
				s.serverError(w, "saving mood entry", err)
				return
			}
			payload, err := s.db.RandomMessage(m)
			if err != nil {
				s.serverError(w, "picking motivation message", err)
				return
			}
			data := map[string]any{"Mood": m}
			if payload != "" {
				data["Message"] = mood.DisplayText(payload)
			}
			s.render(w, "motivation", data)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// redirectOrRefresh lets HTMX callers refresh in place while plain form
// posts get a normal redirect.
func (s *Server) redirectOrRefresh(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}
