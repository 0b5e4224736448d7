package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/example/jeeprep/internal/domain"
	"github.com/example/jeeprep/internal/revision"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// topicForm is the shape of the add/edit topic form. Counters are not
// part of the form and cannot be edited from here.
type topicForm struct {
	Subject       string `validate:"required,oneof=Physics Chemistry Maths"`
	ChapterName   string `validate:"required,max=200"`
	TopicName     string `validate:"required,max=200"`
	Hints         string `validate:"max=2000"`
	HintsImageURL string `validate:"omitempty,url"`
}

func readTopicForm(r *http.Request) (topicForm, error) {
	f := topicForm{
		Subject:       strings.TrimSpace(r.PostFormValue("subject")),
		ChapterName:   strings.TrimSpace(r.PostFormValue("chapter_name")),
		TopicName:     strings.TrimSpace(r.PostFormValue("topic_name")),
		Hints:         strings.TrimSpace(r.PostFormValue("hints")),
		HintsImageURL: strings.TrimSpace(r.PostFormValue("hints_image_url")),
	}
	return f, validate.Struct(f)
}

func (f topicForm) fields() domain.TopicFields {
	return domain.TopicFields{
		Subject:       domain.Subject(f.Subject),
		ChapterName:   f.ChapterName,
		TopicName:     f.TopicName,
		Hints:         f.Hints,
		HintsImageURL: f.HintsImageURL,
	}
}

// handleTopics lists topics and accepts new ones.
func (s *Server) handleTopics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderTopicList(w, r, "")
		case http.MethodPost:
			f, err := readTopicForm(r)
			if err != nil {
				s.renderTopicList(w, r, "Check the form: subject, chapter and topic are required.")
				return
			}
			if _, err := s.db.CreateTopic(f.fields()); err != nil {
				s.serverError(w, "creating topic", err)
				return
			}
			s.renderTopicList(w, r, "")
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// renderTopicList renders the revision centre, applying the subject and
// search filters from the query string.
func (s *Server) renderTopicList(w http.ResponseWriter, r *http.Request, formError string) {
	topics, err := s.db.ListTopics()
	if err != nil {
		s.serverError(w, "listing topics", err)
		return
	}

	subject := r.FormValue("subject")
	query := strings.ToLower(strings.TrimSpace(r.FormValue("q")))
	filtered := topics[:0:0]
	for _, t := range topics {
		if subject != "" && string(t.Subject) != subject {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.TopicName), query) &&
			!strings.Contains(strings.ToLower(t.ChapterName), query) {
			continue
		}
		filtered = append(filtered, t)
	}

	name := "topics"
	if r.Header.Get("HX-Request") == "true" {
		name = "topic_list"
	}
	s.render(w, name, map[string]any{
		"Topics":    filtered,
		"Subjects":  domain.Subjects,
		"Subject":   subject,
		"Query":     query,
		"FormError": formError,
	})
}

// handleTopic edits a single topic.
func (s *Server) handleTopic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/topics/")
		topic, err := s.db.GetTopic(id)
		if err != nil {
			s.serverError(w, "loading topic", err)
			return
		}
		if topic == nil {
			http.NotFound(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			s.render(w, "topic_form", map[string]any{"Topic": topic, "Subjects": domain.Subjects})
		case http.MethodPost:
			f, err := readTopicForm(r)
			if err != nil {
				s.render(w, "topic_form", map[string]any{
					"Topic": topic, "Subjects": domain.Subjects,
					"FormError": "Check the form: subject, chapter and topic are required.",
				})
				return
			}
			if err := s.db.UpdateTopicFields(id, f.fields()); err != nil {
				s.serverError(w, "updating topic", err)
				return
			}
			http.Redirect(w, r, "/topics", http.StatusSeeOther)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleStartSession samples a fresh session and shows its first card.
// Starting a new session discards any session already in flight.
func (s *Server) handleStartSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		size, err := strconv.Atoi(r.PostFormValue("size"))
		if err != nil || size <= 0 {
			http.Error(w, "Session size must be a positive number", http.StatusBadRequest)
			return
		}

		topics, err := s.db.ListTopics()
		if err != nil {
			s.serverError(w, "listing topics for session", err)
			return
		}

		sampled := s.sampler.Sample(topics, size)
		session := revision.NewSession(sampled, s.db, s.noteWriteErr)

		s.mu.Lock()
		s.session = session
		s.lastWriteErr = nil
		s.mu.Unlock()

		s.renderSession(w, session)
	}
}

// handleSessionCard re-renders the current card, used after page loads.
func (s *Server) handleSessionCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := s.currentSession()
		if session == nil {
			s.render(w, "session_none", nil)
			return
		}
		s.renderSession(w, session)
	}
}

// handleToggleHint flips hint visibility on the current card.
func (s *Server) handleToggleHint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		session := s.currentSession()
		if session == nil {
			s.render(w, "session_none", nil)
			return
		}
		s.mu.Lock()
		session.ToggleHint()
		s.mu.Unlock()
		s.renderSession(w, session)
	}
}

// handleOutcome records the result of the current card and advances.
func (s *Server) handleOutcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		outcome, ok := domain.ParseOutcome(r.PostFormValue("outcome"))
		if !ok {
			http.Error(w, "Invalid outcome", http.StatusBadRequest)
			return
		}
		session := s.currentSession()
		if session == nil {
			s.render(w, "session_none", nil)
			return
		}
		s.mu.Lock()
		session.SubmitOutcome(outcome)
		s.mu.Unlock()
		s.renderSession(w, session)
	}
}

// handleEndSession abandons the session in flight.
func (s *Server) handleEndSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		session := s.currentSession()
		if session == nil {
			s.render(w, "session_none", nil)
			return
		}
		s.mu.Lock()
		session.End()
		s.mu.Unlock()
		s.renderSession(w, session)
	}
}

func (s *Server) currentSession() *revision.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// renderSession picks the right fragment for the session's state. The
// snapshot is taken under the server mutex; the session itself does not
// lock.
func (s *Server) renderSession(w http.ResponseWriter, session *revision.Session) {
	s.mu.Lock()
	state := session.State()
	index := session.Index()
	total := session.Len()
	hintShown := session.HintShown()
	topic, _ := session.Current()
	writeErr := s.lastWriteErr
	s.lastWriteErr = nil
	s.mu.Unlock()

	switch state {
	case revision.Completed:
		s.render(w, "session_done", map[string]any{"Count": total})
		return
	case revision.Abandoned:
		s.render(w, "session_abandoned", map[string]any{
			"Reviewed": index, "Total": total,
		})
		return
	}

	data := map[string]any{
		"Topic":     topic,
		"Position":  index + 1,
		"Total":     total,
		"HintShown": hintShown,
	}
	if writeErr != nil {
		data["WriteError"] = "The last result could not be saved."
	}
	s.render(w, "session_card", data)
}
