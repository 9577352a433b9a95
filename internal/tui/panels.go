package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/hacktwin/internal/matchmaker"
	"github.com/sant0-9/hacktwin/internal/session"
	"github.com/sant0-9/hacktwin/internal/studio"
)

type panel int

const (
	panelIdeas panel = iota
	panelRubric
	panelAnnouncements
	panelTeams
	panelJudging
	panelCount
)

var panelTitles = [panelCount]string{
	"Ideas",
	"Rubric",
	"Announcements",
	"Teams",
	"Judging",
}

func newForms() [panelCount]*form {
	scales := strings.Join(studio.Scales, " / ")
	return [panelCount]*form{
		panelIdeas: newForm(
			newInput("Theme", "AI in agriculture"),
			newInput("Number of ideas (1-10)", strconv.Itoa(studio.DefaultIdeaCount)),
			newInput("Creativity (0-1)", strconv.FormatFloat(studio.DefaultTemperature, 'f', -1, 64)),
		),
		panelRubric: newForm(
			newInput("What should judges evaluate?", "Assess technical complexity, demo, and impact"),
			newArea("Categories (one per line)", strings.Join(studio.DefaultRubricCategories, "\n")),
			newInput("Scale ("+scales+")", studio.Scales[0]),
		),
		panelAnnouncements: newForm(
			newInput("Event name", "Hack for Good"),
			newInput("Dates", "Oct 10-12, 2025"),
			newInput("Audience", "participants"),
			newInput("Tone ("+strings.Join(studio.Tones, " / ")+")", studio.Tones[0]),
		),
		panelTeams: newForm(
			newArea("Participants (Name: skill1, skill2)", ""),
			newInput("Team size (2-6)", strconv.Itoa(studio.DefaultTeamSize)),
		),
		panelJudging: newForm(
			newArea("Submission", ""),
			newArea("Rubric categories (one per line)", strings.Join(studio.DefaultJudgingCategories, "\n")),
			newInput("Scale ("+scales+")", studio.Scales[0]),
		),
	}
}

// resultMsg carries a finished panel operation back to the update loop.
type resultMsg struct {
	panel   panel
	session *session.Session
	text    string
	outcome *studio.Outcome
	err     error
}

// submit runs the active panel's operation off the update loop. The
// operation works on a copy of the session, swapped in when it returns.
func (a *App) submit() tea.Cmd {
	p := a.state.panel
	v := a.state.forms[p].Values()
	svc := a.state.service
	sess := new(session.Session)
	*sess = *a.state.session
	ctx := context.Background()

	return func() tea.Msg {
		msg := resultMsg{panel: p, session: sess}

		switch p {
		case panelIdeas:
			_, msg.err = svc.GenerateIdeas(ctx, sess, studio.IdeasRequest{
				Theme:       v[0],
				Count:       atoi(v[1]),
				Temperature: atof(v[2]),
			})

		case panelRubric:
			msg.text, msg.err = svc.BuildRubric(ctx, studio.RubricRequest{
				Goal:       v[0],
				Categories: studio.SplitLines(v[1]),
				Scale:      v[2],
			})

		case panelAnnouncements:
			msg.text, msg.err = svc.WriteAnnouncement(ctx, sess, studio.AnnouncementRequest{
				EventName: v[0],
				Dates:     v[1],
				Audience:  v[2],
				Tone:      v[3],
			})

		case panelTeams:
			_, msg.err = svc.SuggestTeams(sess, studio.TeamsRequest{
				Participants: v[0],
				TeamSize:     atoi(v[1]),
			})

		case panelJudging:
			msg.outcome, msg.err = svc.Judge(ctx, sess, studio.JudgeRequest{
				Submission: v[0],
				Categories: studio.SplitLines(v[1]),
				Scale:      v[2],
			})
		}

		return msg
	}
}

// renderOutput shows what the active panel has produced so far.
func (a *App) renderOutput(p panel) string {
	sess := a.state.session
	out := a.state.outputs[p]

	switch p {
	case panelIdeas:
		return strings.Join(sess.Ideas, "\n")

	case panelRubric:
		return out.text

	case panelAnnouncements:
		var b strings.Builder
		for _, ann := range sess.RecentAnnouncements() {
			fmt.Fprintf(&b, "Announcement %d\n%s\n\n", ann.Number, ann.Text)
		}
		return strings.TrimSpace(b.String())

	case panelTeams:
		return strings.Join(matchmaker.Format(sess.Teams), "\n")

	case panelJudging:
		if out.outcome == nil {
			return ""
		}
		if out.outcome.Result == nil {
			return out.outcome.Raw
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Summary\n%s\n", out.outcome.Result.Summary)
		for _, s := range out.outcome.Result.Scores {
			fmt.Fprintf(&b, "\n%s: %s\n  %s", s.Category, s.Score, s.Justification)
		}
		if n := len(sess.Judgings); n > 1 {
			fmt.Fprintf(&b, "\n\n%d submissions judged this session", n)
		}
		return b.String()
	}

	return ""
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return -1
	}
	return f
}
