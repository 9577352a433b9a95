// Package prompts renders the text sent to the model for each generation
// panel.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

//go:embed *.tmpl
var files embed.FS

var templates = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{
			"lower":     strings.ToLower,
			"quoteList": quoteList,
		}).
		ParseFS(files, "*.tmpl"),
)

// IdeasInput feeds the idea generator prompt.
type IdeasInput struct {
	Theme string
	Count int
}

// RubricInput feeds the rubric builder prompt.
type RubricInput struct {
	Goal       string
	Categories []string
	Scale      string
}

// AnnouncementInput feeds the announcement writer prompt.
type AnnouncementInput struct {
	EventName string
	Dates     string
	Audience  string
	Tone      string
}

// JudgingInput feeds the judging assistant prompt.
type JudgingInput struct {
	Submission string
	Categories []string
	Scale      string
}

// Ideas builds the idea generator prompt.
func Ideas(in IdeasInput) (string, error) {
	return render("ideas.tmpl", in)
}

// Rubric builds the rubric builder prompt.
func Rubric(in RubricInput) (string, error) {
	return render("rubric.tmpl", in)
}

// Announcement builds the announcement writer prompt.
func Announcement(in AnnouncementInput) (string, error) {
	return render("announcement.tmpl", in)
}

// Judging builds the judging assistant prompt. It asks for strict JSON, which
// the model may still ignore.
func Judging(in JudgingInput) (string, error) {
	return render("judging.tmpl", in)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// quoteList renders ["a", "b"] so category names survive commas and spaces.
func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
