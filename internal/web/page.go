package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/sant0-9/hacktwin/internal/judging"
	"github.com/sant0-9/hacktwin/internal/matchmaker"
	"github.com/sant0-9/hacktwin/internal/session"
	"github.com/sant0-9/hacktwin/internal/studio"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

const (
	tabIdeas         = "ideas"
	tabRubric        = "rubric"
	tabAnnouncements = "announcements"
	tabTeams         = "teams"
	tabJudging       = "judging"
)

type tab struct {
	ID    string
	Title string
}

var tabs = []tab{
	{tabIdeas, "Idea Generator"},
	{tabRubric, "Rubric Builder"},
	{tabAnnouncements, "Announcements"},
	{tabTeams, "Team Matchmaker"},
	{tabJudging, "Judging Assistant"},
}

type page struct {
	Tab    string
	Tabs   []tab
	Scales []string
	Tones  []string
	Error  string

	Ideas        ideasPanel
	Rubric       rubricPanel
	Announcement announcementPanel
	Teams        teamsPanel
	Judging      judgingPanel
}

type ideasPanel struct {
	Theme       string
	Count       int
	Temperature float64
	Output      []string
}

type rubricPanel struct {
	Goal       string
	Categories string
	Scale      string
	Output     string
}

type announcementPanel struct {
	EventName string
	Dates     string
	Audience  string
	Tone      string
	Latest    string
	Recent    []session.Announcement
}

type teamsPanel struct {
	Participants string
	TeamSize     int
	Lines        []string
}

func (t *teamsPanel) fill(sess *session.Session) {
	t.Lines = matchmaker.Format(sess.Teams)
}

type judgingPanel struct {
	Submission string
	Categories string
	Scale      string
	Outcome    *studio.Outcome
	History    []judging.Result
}

// newPage builds a page showing sess with every form at its defaults.
func newPage(sess *session.Session, active string) *page {
	if !validTab(active) {
		active = tabIdeas
	}

	p := &page{
		Tab:    active,
		Tabs:   tabs,
		Scales: studio.Scales,
		Tones:  studio.Tones,
		Ideas: ideasPanel{
			Theme:       "AI in agriculture",
			Count:       studio.DefaultIdeaCount,
			Temperature: studio.DefaultTemperature,
			Output:      sess.Ideas,
		},
		Rubric: rubricPanel{
			Goal:       "Assess technical complexity, demo, and impact",
			Categories: strings.Join(studio.DefaultRubricCategories, "\n"),
			Scale:      studio.Scales[0],
		},
		Announcement: announcementPanel{
			EventName: "Hack for Good",
			Dates:     "Oct 10-12, 2025",
			Audience:  "participants",
			Tone:      studio.Tones[0],
			Recent:    sess.RecentAnnouncements(),
		},
		Teams: teamsPanel{
			TeamSize: studio.DefaultTeamSize,
		},
		Judging: judgingPanel{
			Categories: strings.Join(studio.DefaultJudgingCategories, "\n"),
			Scale:      studio.Scales[0],
			History:    sess.Judgings,
		},
	}
	p.Teams.fill(sess)
	return p
}

func validTab(id string) bool {
	for _, t := range tabs {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (h *Handler) render(w http.ResponseWriter, status int, p *page) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		h.log.Error("render page", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
