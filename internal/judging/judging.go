// Package judging pulls the judging assistant's structured verdict out of
// free-form model output.
//
// Parsing is best-effort. Models often wrap the requested JSON in commentary
// or code fences, so Parse starts at the first '{' and decodes one value,
// ignoring whatever follows. Callers must be ready to show the raw text when
// Parse fails.
package judging

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrNotJSON means no JSON object could be decoded from the text.
	ErrNotJSON = errors.New("no JSON object in model output")
	// ErrEmptyResult means the decoded object carried no fields.
	ErrEmptyResult = errors.New("model returned an empty JSON object")
)

// Result is a parsed verdict.
type Result struct {
	Summary string  `json:"summary"`
	Scores  []Score `json:"scores"`
}

// Score is one rubric category. Score holds the display text of the model's
// value, "N/A" when it gave none.
type Score struct {
	Category      string `json:"category"`
	Score         string `json:"score"`
	Justification string `json:"justification"`
}

// Parse extracts a Result from model output. Category order follows the key
// order of the model's "scores" object.
func Parse(text string) (*Result, error) {
	body := text
	if start := strings.IndexByte(text, '{'); start >= 0 {
		body = text[start:]
	}

	var raw json.RawMessage
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, ErrNotJSON
	}
	if len(doc.Map()) == 0 {
		return nil, ErrEmptyResult
	}

	result := &Result{
		Summary: doc.Get("summary").String(),
		Scores:  []Score{},
	}

	scores := doc.Get("scores")
	if scores.IsObject() {
		scores.ForEach(func(category, detail gjson.Result) bool {
			if !detail.IsObject() {
				return true
			}
			score := "N/A"
			if v := detail.Get("score"); v.Exists() {
				score = v.String()
			}
			result.Scores = append(result.Scores, Score{
				Category:      category.String(),
				Score:         score,
				Justification: detail.Get("justification").String(),
			})
			return true
		})
	}

	return result, nil
}
