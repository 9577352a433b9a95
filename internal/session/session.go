// Package session holds the per-visitor state of the studio panels.
package session

import (
	"time"

	"github.com/sant0-9/hacktwin/internal/judging"
	"github.com/sant0-9/hacktwin/internal/matchmaker"
)

// RecentLimit is how many announcements RecentAnnouncements returns.
const RecentLimit = 5

type Session struct {
	ID            string            `json:"id"`
	Ideas         []string          `json:"ideas"`
	Announcements []string          `json:"announcements"`
	Teams         []matchmaker.Team `json:"teams"`
	Judgings      []judging.Result  `json:"judgings"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Announcement is an announcement with its 1-based position in the full history.
type Announcement struct {
	Number int
	Text   string
}

func New(id string) *Session {
	return &Session{
		ID:            id,
		Ideas:         []string{},
		Announcements: []string{},
		Teams:         []matchmaker.Team{},
		Judgings:      []judging.Result{},
	}
}

func (s *Session) AddAnnouncement(text string) {
	s.Announcements = append(s.Announcements, text)
}

func (s *Session) AddJudging(r judging.Result) {
	s.Judgings = append(s.Judgings, r)
}

// RecentAnnouncements returns up to RecentLimit announcements, latest first.
func (s *Session) RecentAnnouncements() []Announcement {
	n := len(s.Announcements)
	out := make([]Announcement, 0, min(n, RecentLimit))
	for i := n - 1; i >= 0 && len(out) < RecentLimit; i-- {
		out = append(out, Announcement{Number: i + 1, Text: s.Announcements[i]})
	}
	return out
}
