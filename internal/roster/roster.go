// Package roster turns free-form participant lists into structured records.
package roster

import (
	"strings"

	"github.com/samber/lo"
)

// Participant is one parsed roster line.
type Participant struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Parse reads one participant per line. Accepted shapes:
//
//	Alice: ML, Python, CV
//	Bob - design
//	Carol
//
// A colon takes precedence over a hyphen. Blank lines are skipped and the
// parser never fails: a line without a separator becomes a participant with
// no skills, and a line starting with a separator keeps an empty name.
func Parse(text string) []Participant {
	var participants []Participant
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		participants = append(participants, parseLine(line))
	}
	return participants
}

func parseLine(line string) Participant {
	name, skills, found := strings.Cut(line, ":")
	if !found {
		name, skills, _ = strings.Cut(line, "-")
	}
	return Participant{
		Name:   strings.TrimSpace(name),
		Skills: parseSkills(skills),
	}
}

// parseSkills keeps order and duplicates.
func parseSkills(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return lo.FilterMap(strings.Split(raw, ","), func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})
}

func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}
