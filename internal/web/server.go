package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"sync"

	"github.com/example/jeeprep/internal/feedback"
	"github.com/example/jeeprep/internal/kvstore"
	"github.com/example/jeeprep/internal/revision"
	"github.com/example/jeeprep/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Options carries the server configuration that is not a dependency.
// Empty AccessKey leaves the student area unlocked; empty AdminKey
// disables the admin area entirely.
type Options struct {
	AccessKey   string
	AdminKey    string
	StudentName string
	ReposDir    string
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	db        *storage.DB
	router    *http.ServeMux
	templates *template.Template
	sampler   *revision.Sampler
	sessions  kvstore.Store
	feedback  feedback.Generator
	opts      Options

	// A single student uses the app, so one active revision session is
	// enough. The mutex belongs to the HTTP layer; the session itself
	// does not lock.
	mu           sync.Mutex
	session      *revision.Session
	lastWriteErr error
}

// NewServer creates and configures a new server. The feedback generator
// may be nil, in which case AI feedback is reported as unconfigured.
func NewServer(db *storage.DB, sessions kvstore.Store, gen feedback.Generator, opts Options) *Server {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"hue":    hueAttr,
		"bucket": bucketLabel,
	}).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		db:        db,
		router:    http.NewServeMux(),
		templates: tpl,
		sampler:   revision.NewSampler(),
		sessions:  sessions,
		feedback:  gen,
		opts:      opts,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Student area.
	s.router.HandleFunc("/unlock", s.handleUnlock())
	s.router.HandleFunc("/", s.student(s.handleDashboard()))
	s.router.HandleFunc("/feedback", s.student(s.handleFeedback()))
	s.router.HandleFunc("/topics", s.student(s.handleTopics()))
	s.router.HandleFunc("/topics/", s.student(s.handleTopic()))
	s.router.HandleFunc("/session/start", s.student(s.handleStartSession()))
	s.router.HandleFunc("/session/card", s.student(s.handleSessionCard()))
	s.router.HandleFunc("/session/hint", s.student(s.handleToggleHint()))
	s.router.HandleFunc("/session/outcome", s.student(s.handleOutcome()))
	s.router.HandleFunc("/session/end", s.student(s.handleEndSession()))
	s.router.HandleFunc("/questions", s.student(s.handleQuestions()))
	s.router.HandleFunc("/questions/", s.student(s.handleAnswerQuestion()))
	s.router.HandleFunc("/decks", s.student(s.handleDecks()))
	s.router.HandleFunc("/decks/", s.student(s.handleDeck()))
	s.router.HandleFunc("/syllabus", s.student(s.handleSyllabus()))
	s.router.HandleFunc("/doubts", s.student(s.handleDoubts()))
	s.router.HandleFunc("/doubts/", s.student(s.handleDoubtAction()))
	s.router.HandleFunc("/help", s.student(s.handleHelp()))
	s.router.HandleFunc("/help/", s.student(s.handleHelpAction()))
	s.router.HandleFunc("/lectures", s.student(s.handleLectures()))
	s.router.HandleFunc("/mood", s.student(s.handleMood()))

	// Admin area.
	s.router.HandleFunc("/admin/unlock", s.handleAdminUnlock())
	s.router.HandleFunc("/admin", s.admin(s.handleAdminHome()))
	s.router.HandleFunc("/admin/doubts", s.admin(s.handleAdminDoubts()))
	s.router.HandleFunc("/admin/doubts/", s.admin(s.handleAdminDoubtAction()))
	s.router.HandleFunc("/admin/help/", s.admin(s.handleAdminHelpAction()))
	s.router.HandleFunc("/admin/lectures", s.admin(s.handleAdminLectures()))
	s.router.HandleFunc("/admin/lectures/", s.admin(s.handleAdminDeleteLecture()))
	s.router.HandleFunc("/admin/questions", s.admin(s.handleAdminQuestions()))
	s.router.HandleFunc("/admin/questions/", s.admin(s.handleAdminDeleteQuestion()))
	s.router.HandleFunc("/admin/decks", s.admin(s.handleAdminDecks()))
	s.router.HandleFunc("/admin/decks/cards/", s.admin(s.handleAdminDeleteFlashcard()))
	s.router.HandleFunc("/admin/mood-helper", s.admin(s.handleMoodHelper()))
	s.router.HandleFunc("/admin/sources", s.admin(s.handleSources()))
	s.router.HandleFunc("/admin/sources/", s.admin(s.handleDeleteSource()))
	s.router.HandleFunc("/admin/sync", s.admin(s.handlePostSync()))
}

// render executes a named template, logging rather than surfacing
// failures so a half-written response does not get a second status line.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, context string, err error) {
	log.Printf("Error %s: %v", context, err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (s *Server) noteWriteErr(err error) {
	s.mu.Lock()
	s.lastWriteErr = err
	s.mu.Unlock()
}

func hueAttr(success, fails int) template.CSS {
	h, ok := revision.Hue(success, fails)
	if !ok {
		return "background-color: #9ca3af"
	}
	return template.CSS(fmt.Sprintf("background-color: hsl(%.0f, 70%%, 45%%)", h))
}

func bucketLabel(success, fails int) string {
	switch revision.Classify(success, fails) {
	case revision.Mastered:
		return "Mastered"
	case revision.Reviewing:
		return "Reviewing"
	default:
		return "Needs practice"
	}
}
