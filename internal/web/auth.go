package web

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/google/uuid"
)

const (
	studentCookie = "jeeprep_session"
	adminCookie   = "jeeprep_admin_session"

	roleStudent = "student"
	roleAdmin   = "admin"
)

// student gates a handler behind the access key. An empty key means the
// area is open and the handler runs as-is.
func (s *Server) student(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AccessKey == "" || s.hasRole(r, studentCookie, roleStudent) {
			next(w, r)
			return
		}
		s.render(w, "unlock", map[string]any{"Action": "/unlock", "Title": "Enter access key"})
	}
}

// admin gates a handler behind the admin key. Unlike the student area,
// an empty admin key closes the area rather than opening it.
func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AdminKey == "" {
			http.NotFound(w, r)
			return
		}
		if s.hasRole(r, adminCookie, roleAdmin) {
			next(w, r)
			return
		}
		s.render(w, "unlock", map[string]any{"Action": "/admin/unlock", "Title": "Enter admin key"})
	}
}

// hasRole checks the cookie token against the session store.
func (s *Server) hasRole(r *http.Request, cookieName, role string) bool {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return false
	}
	got, ok, err := s.sessions.Get("session:" + c.Value)
	if err != nil {
		log.Printf("Error reading session store: %v", err)
		return false
	}
	return ok && got == role
}

func (s *Server) handleUnlock() http.HandlerFunc {
	return s.unlock(s.opts.AccessKey, studentCookie, roleStudent, "/")
}

func (s *Server) handleAdminUnlock() http.HandlerFunc {
	return s.unlock(s.opts.AdminKey, adminCookie, roleAdmin, "/admin")
}

func (s *Server) unlock(key, cookieName, role, redirect string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		attempt := r.PostFormValue("key")
		if key == "" || subtle.ConstantTimeCompare([]byte(attempt), []byte(key)) != 1 {
			w.WriteHeader(http.StatusUnauthorized)
			s.render(w, "unlock", map[string]any{
				"Action": r.URL.Path, "Title": "Enter access key", "Error": "Wrong key",
			})
			return
		}

		token := uuid.NewString()
		if err := s.sessions.Set("session:"+token, role); err != nil {
			s.serverError(w, "storing session token", err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, redirect, http.StatusSeeOther)
	}
}
