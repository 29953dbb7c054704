package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/xolan/jot/internal/auth"
	"github.com/xolan/jot/internal/filter"
	"github.com/xolan/jot/internal/service"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

type loginRequest struct {
	Password string `json:"password"`
}

type entryRequest struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// EntryView is an entry as returned by the parsed entries endpoint
type EntryView struct {
	Date     string `json:"date"`
	Content  string `json:"content"`
	RawInput string `json:"raw_input,omitempty"`
	HTML     string `json:"html"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}

func respondStatus(w http.ResponseWriter, status string) {
	respond(w, http.StatusOK, map[string]string{"status": status})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func methodNotAllowed(allowed ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondStatus(w, "ok")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, expires, err := s.sessions.Login(req.Password)
	if err != nil {
		s.log.Warn("login rejected", zap.String("remote", r.RemoteAddr), zap.Error(err))
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respondStatus(w, "logged_in")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(auth.CookieName); err == nil {
		s.sessions.Logout(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respondStatus(w, "logged_out")
}

func (s *Server) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	respondStatus(w, "authenticated")
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.journal.Types())
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := s.journal.NewSubmission(req.Type, req.Content)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.queue.Submit(sub); err != nil {
		if errors.Is(err, service.ErrQueueFull) || errors.Is(err, service.ErrProcessorStopped) {
			s.log.Warn("submission rejected", zap.String("submission", sub.ID), zap.Error(err))
			respondError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		s.log.Error("failed to queue submission", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondStatus(w, "created")
}

func (s *Server) handleRawEntries(w http.ResponseWriter, r *http.Request) {
	content, err := s.journal.Raw(r.URL.Query().Get("type"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"content": content})
}

func (s *Server) handleParsedEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rng, err := s.journal.ParseRange(query.Get("range"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.journal.Entries(query.Get("type"), filter.NewFilter(query.Get("q"), rng))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		html, err := s.renderer.Entry(e)
		if err != nil {
			s.log.Error("failed to render entry", zap.String("date", e.Date), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		views = append(views, EntryView{Date: e.Date, Content: e.Content, RawInput: e.RawInput, HTML: html})
	}
	respond(w, http.StatusOK, map[string][]EntryView{"entries": views})
}

func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrUnknownType) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Error("journal read failed", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
