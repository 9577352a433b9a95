package studio

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Form defaults, matching what the panels prefill.
var (
	DefaultRubricCategories  = []string{"Originality", "Technical Complexity", "Impact", "Demo & Presentation"}
	DefaultJudgingCategories = []string{"Originality", "Technical Complexity", "Impact", "Demo"}
	Scales                   = []string{"0-5", "0-10", "0-100"}
	Tones                    = []string{"Professional", "Casual", "Excited", "Concise"}
)

const (
	DefaultIdeaCount   = 5
	DefaultTemperature = 0.2
	DefaultTeamSize    = 3
)

type IdeasRequest struct {
	Theme       string  `validate:"required"`
	Count       int     `validate:"min=1,max=10"`
	Temperature float64 `validate:"gte=0,lte=1"`
}

type RubricRequest struct {
	Goal       string   `validate:"required"`
	Categories []string `validate:"min=1,dive,required"`
	Scale      string   `validate:"oneof=0-5 0-10 0-100"`
}

type AnnouncementRequest struct {
	EventName string `validate:"required"`
	Dates     string `validate:"required"`
	Audience  string `validate:"required"`
	Tone      string `validate:"oneof=Professional Casual Excited Concise"`
}

type TeamsRequest struct {
	Participants string
	TeamSize     int `validate:"min=2,max=6"`
}

type JudgeRequest struct {
	Submission string
	Categories []string `validate:"dive,required"`
	Scale      string   `validate:"oneof=0-5 0-10 0-100"`
}

// OutputLines splits model output into lines with trailing space removed.
// Interior blank lines are kept; leading and trailing ones are dropped.
func OutputLines(text string) []string {
	lines := lo.Map(strings.Split(text, "\n"), func(line string, _ int) string {
		return strings.TrimRightFunc(line, unicode.IsSpace)
	})
	_, start, ok := lo.FindIndexOf(lines, notBlank)
	if !ok {
		return nil
	}
	_, end, _ := lo.FindLastIndexOf(lines, notBlank)
	return lines[start : end+1]
}

func notBlank(line string) bool {
	return strings.TrimSpace(line) != ""
}

// SplitLines returns the trimmed non-blank lines of text.
func SplitLines(text string) []string {
	return lo.FilterMap(strings.Split(text, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
}
