package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/example/jeeprep/internal/content"
	"github.com/example/jeeprep/internal/domain"
	"github.com/example/jeeprep/internal/mood"
)

// handleAdminHome renders the admin landing page with pending counts.
func (s *Server) handleAdminHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := s.db.ListDoubtsByStatus(false)
		if err != nil {
			s.serverError(w, "listing pending doubts", err)
			return
		}
		requests, err := s.db.ListHelpRequests()
		if err != nil {
			s.serverError(w, "listing help requests", err)
			return
		}
		open := 0
		for _, h := range requests {
			if !h.IsAddressed && !h.IsCleared {
				open++
			}
		}
		s.render(w, "admin", map[string]any{
			"PendingDoubts": len(pending),
			"OpenHelp":      open,
		})
	}
}

// handleAdminDoubts lists doubts for answering, pending first.
func (s *Server) handleAdminDoubts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending, err := s.db.ListDoubtsByStatus(false)
		if err != nil {
			s.serverError(w, "listing pending doubts", err)
			return
		}
		answered, err := s.db.ListDoubtsByStatus(true)
		if err != nil {
			s.serverError(w, "listing answered doubts", err)
			return
		}
		s.render(w, "admin_doubts", map[string]any{
			"Pending": pending, "Answered": answered,
		})
	}
}

// handleAdminDoubtAction answers a doubt or revises an earlier answer.
func (s *Server) handleAdminDoubtAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(r.URL.Path, "/admin/doubts/")
		answer := strings.TrimSpace(r.PostFormValue("answer"))
		if answer == "" {
			http.Error(w, "An answer cannot be empty", http.StatusBadRequest)
			return
		}

		var err error
		switch {
		case strings.HasSuffix(rest, "/answer"):
			err = s.db.AnswerDoubt(strings.TrimSuffix(rest, "/answer"), answer)
		case strings.HasSuffix(rest, "/revise"):
			err = s.db.UpdateDoubtAnswer(strings.TrimSuffix(rest, "/revise"), answer)
		default:
			http.NotFound(w, r)
			return
		}
		if err != nil {
			s.serverError(w, "saving doubt answer", err)
			return
		}
		s.redirectOrRefresh(w, r, "/admin/doubts")
	}
}

// handleAdminHelpAction marks a help request as addressed.
func (s *Server) handleAdminHelpAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/help/"), "/addressed")
		if err := s.db.MarkHelpAddressed(id); err != nil {
			s.serverError(w, "marking help request addressed", err)
			return
		}
		s.redirectOrRefresh(w, r, "/admin")
	}
}

// handleAdminLectures lists lectures and accepts new ones.
func (s *Server) handleAdminLectures() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			subject := domain.Subject(r.PostFormValue("subject"))
			title := strings.TrimSpace(r.PostFormValue("title"))
			videoURL := strings.TrimSpace(r.PostFormValue("video_url"))
			if title == "" || videoURL == "" || !subject.Valid() {
				http.Error(w, "A lecture needs a title, subject and video URL", http.StatusBadRequest)
				return
			}
			_, err := s.db.CreateLecture(domain.Lecture{
				Title:        title,
				Description:  strings.TrimSpace(r.PostFormValue("description")),
				Subject:      subject,
				Channel:      strings.TrimSpace(r.PostFormValue("channel")),
				Duration:     strings.TrimSpace(r.PostFormValue("duration")),
				VideoURL:     videoURL,
				ThumbnailURL: strings.TrimSpace(r.PostFormValue("thumbnail_url")),
			})
			if err != nil {
				s.serverError(w, "creating lecture", err)
				return
			}
		}

		lectures, err := s.db.ListLectures()
		if err != nil {
			s.serverError(w, "listing lectures", err)
			return
		}
		s.render(w, "admin_lectures", map[string]any{
			"Lectures": lectures, "Subjects": domain.Subjects,
		})
	}
}

// handleAdminDeleteLecture removes a lecture from the library.
func (s *Server) handleAdminDeleteLecture() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete && r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/admin/lectures/")
		if err := s.db.DeleteLecture(id); err != nil {
			s.serverError(w, "deleting lecture", err)
			return
		}
		s.redirectOrRefresh(w, r, "/admin/lectures")
	}
}

// handleMoodHelper renders the bulk message uploader and ingests a
// pasted JSON array into the named collection. Every message must pass
// validation or nothing is stored.
func (s *Server) handleMoodHelper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var uploadError, uploaded string

		if r.Method == http.MethodPost {
			collection := strings.TrimSpace(r.PostFormValue("collection"))
			raw := r.PostFormValue("messages")
			if collection == "" {
				uploadError = "Name the mood collection the messages belong to."
			} else {
				messages, err := mood.ParseMessages([]byte(raw))
				if err != nil {
					uploadError = err.Error()
				} else {
					payloads, err := mood.EncodeAll(messages)
					if err != nil {
						s.serverError(w, "encoding mood messages", err)
						return
					}
					if err := s.db.AddMessages(collection, payloads); err != nil {
						s.serverError(w, "storing mood messages", err)
						return
					}
					uploaded = strconv.Itoa(len(payloads)) + " messages added to " + collection
				}
			}
		}

		counts, err := s.db.MessageCollections()
		if err != nil {
			s.serverError(w, "listing message collections", err)
			return
		}
		s.render(w, "admin_mood", map[string]any{
			"Collections": counts,
			"Error":       uploadError,
			"Uploaded":    uploaded,
		})
	}
}

// handleSources handles both GET and POST for the content sources page.
func (s *Server) handleSources() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderSources(w, "sources")
		case http.MethodPost:
			path := strings.TrimSpace(r.PostFormValue("path"))
			if path == "" {
				http.Error(w, "Path cannot be empty", http.StatusBadRequest)
				return
			}
			sourceType := "local"
			if strings.HasSuffix(path, ".git") || strings.HasPrefix(path, "git@") || strings.HasPrefix(path, "https://") {
				sourceType = "git"
			}
			if _, err := s.db.InsertSource(path, sourceType); err != nil {
				s.serverError(w, "inserting new source", err)
				return
			}
			s.renderSources(w, "source_list")
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeleteSource deletes a source and re-renders the source list.
// Topics already imported from the source keep their counters.
func (s *Server) handleDeleteSource() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/admin/sources/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid source ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteSource(id); err != nil {
			s.serverError(w, "deleting source", err)
			return
		}
		s.renderSources(w, "source_list")
	}
}

// handlePostSync runs a sync in the foreground and re-renders the list,
// so the admin sees the result of the pass they asked for.
func (s *Server) handlePostSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := content.Run(s.db, s.opts.ReposDir); err != nil {
			s.serverError(w, "running content sync", err)
			return
		}
		s.render(w, "sync_success", nil)
		s.renderSources(w, "source_list")
	}
}

func (s *Server) renderSources(w http.ResponseWriter, name string) {
	sources, err := s.db.GetAllSources()
	if err != nil {
		s.serverError(w, "listing sources", err)
		return
	}
	s.render(w, name, map[string]any{"Sources": sources})
}
