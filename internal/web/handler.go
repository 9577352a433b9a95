// Package web serves the browser front end of the studio.
package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sant0-9/hacktwin/internal/session"
	"github.com/sant0-9/hacktwin/internal/studio"
)

const CookieName = "hacktwin_session"

type Handler struct {
	studio *studio.Service
	store  session.Store
	ttl    time.Duration
	log    *slog.Logger
}

func New(svc *studio.Service, store session.Store, ttl time.Duration, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		studio: svc,
		store:  store,
		ttl:    ttl,
		log:    log,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.handleHealth)
	r.Get("/", h.handleIndex)
	r.Post("/ideas", h.handleIdeas)
	r.Post("/rubric", h.handleRubric)
	r.Post("/announcements", h.handleAnnouncements)
	r.Post("/teams", h.handleTeams)
	r.Post("/judging", h.handleJudging)
	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(started),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.failSession(w, err)
		return
	}

	p := newPage(sess, r.URL.Query().Get("tab"))
	h.render(w, http.StatusOK, p)
}

func (h *Handler) handleIdeas(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.failSession(w, err)
		return
	}

	p := newPage(sess, tabIdeas)
	p.Ideas.Theme = r.FormValue("theme")
	p.Ideas.Count = formInt(r, "count", studio.DefaultIdeaCount)
	p.Ideas.Temperature = formFloat(r, "temperature", studio.DefaultTemperature)

	ideas, err := h.studio.GenerateIdeas(r.Context(), sess, studio.IdeasRequest{
		Theme:       p.Ideas.Theme,
		Count:       p.Ideas.Count,
		Temperature: p.Ideas.Temperature,
	})
	if err == nil {
		p.Ideas.Output = ideas
	}
	h.finish(w, r, sess, p, err)
}

func (h *Handler) handleRubric(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.failSession(w, err)
		return
	}

	p := newPage(sess, tabRubric)
	p.Rubric.Goal = r.FormValue("goal")
	p.Rubric.Categories = r.FormValue("categories")
	p.Rubric.Scale = r.FormValue("scale")

	p.Rubric.Output, err = h.studio.BuildRubric(r.Context(), studio.RubricRequest{
		Goal:       p.Rubric.Goal,
		Categories: studio.SplitLines(p.Rubric.Categories),
		Scale:      p.Rubric.Scale,
	})
	h.finish(w, r, sess, p, err)
}

func (h *Handler) handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.failSession(w, err)
		return
	}

	p := newPage(sess, tabAnnouncements)
	p.Announcement.EventName = r.FormValue("event_name")
	p.Announcement.Dates = r.FormValue("dates")
	p.Announcement.Audience = r.FormValue("audience")
	p.Announcement.Tone = r.FormValue("tone")

	p.Announcement.Latest, err = h.studio.WriteAnnouncement(r.Context(), sess, studio.AnnouncementRequest{
		EventName: p.Announcement.EventName,
		Dates:     p.Announcement.Dates,
		Audience:  p.Announcement.Audience,
		Tone:      p.Announcement.Tone,
	})
	p.Announcement.Recent = sess.RecentAnnouncements()
	h.finish(w, r, sess, p, err)
}

func (h *Handler) handleTeams(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.failSession(w, err)
		return
	}

	p := newPage(sess, tabTeams)
	p.Teams.Participants = r.FormValue("participants")
	p.Teams.TeamSize = formInt(r, "team_size", studio.DefaultTeamSize)

	_, err = h.studio.SuggestTeams(sess, studio.TeamsRequest{
		Participants: p.Teams.Participants,
		TeamSize:     p.Teams.TeamSize,
	})
	p.Teams.fill(sess)
	h.finish(w, r, sess, p, err)
}

func (h *Handler) handleJudging(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.failSession(w, err)
		return
	}

	p := newPage(sess, tabJudging)
	p.Judging.Submission = r.FormValue("submission")
	p.Judging.Categories = r.FormValue("categories")
	p.Judging.Scale = r.FormValue("scale")

	p.Judging.Outcome, err = h.studio.Judge(r.Context(), sess, studio.JudgeRequest{
		Submission: p.Judging.Submission,
		Categories: studio.SplitLines(p.Judging.Categories),
		Scale:      p.Judging.Scale,
	})
	p.Judging.History = sess.Judgings
	h.finish(w, r, sess, p, err)
}

// finish saves the session after a successful operation and renders the page
// with the operation's error, if any, inline.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, sess *session.Session, p *page, opErr error) {
	if opErr != nil {
		status := statusFor(opErr)
		h.log.Warn("operation failed", "tab", p.Tab, "status", status, "error", opErr,
			"request_id", middleware.GetReqID(r.Context()))
		p.Error = opErr.Error()
		h.render(w, status, p)
		return
	}

	if err := h.store.Save(sess); err != nil {
		h.failSession(w, err)
		return
	}
	h.render(w, http.StatusOK, p)
}

// session loads the visitor's session, issuing a new cookie when the request
// has none or an unusable one.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	id := ""
	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			id = c.Value
		}
	}

	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(h.ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return h.store.Load(id)
}

func (h *Handler) failSession(w http.ResponseWriter, err error) {
	h.log.Error("session store failure", "error", err)
	http.Error(w, "session unavailable", http.StatusInternalServerError)
}

func formInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func formFloat(r *http.Request, key string, def float64) float64 {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return -1
	}
	return f
}
