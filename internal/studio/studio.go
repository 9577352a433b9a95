// Package studio implements the five organizer panels on top of the model
// generator. Front ends hand it a request and the visitor's session; it
// validates, calls the model, and records results in the session.
package studio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/sant0-9/hacktwin/internal/judging"
	"github.com/sant0-9/hacktwin/internal/llm"
	"github.com/sant0-9/hacktwin/internal/matchmaker"
	"github.com/sant0-9/hacktwin/internal/prompts"
	"github.com/sant0-9/hacktwin/internal/roster"
	"github.com/sant0-9/hacktwin/internal/session"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoParticipants  = errors.New("no participants parsed; use the format `Name: skill1, skill2` on multiple lines")
	ErrEmptySubmission = errors.New("paste submission content first")
)

// JudgingWarning is shown next to raw output the judging parser could not read.
const JudgingWarning = "Could not parse model output as JSON; showing raw text."

type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.Options) (string, error)
}

type Service struct {
	gen      Generator
	validate *validator.Validate
	log      *slog.Logger
}

func NewService(gen Generator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		gen:      gen,
		validate: validator.New(),
		log:      log,
	}
}

// Outcome of a judging run: either Result, or Raw text with a Warning.
type Outcome struct {
	Result  *judging.Result
	Raw     string
	Warning string
}

// GenerateIdeas asks for req.Count project ideas and stores the output lines
// as the session's latest ideas.
func (s *Service) GenerateIdeas(ctx context.Context, sess *session.Session, req IdeasRequest) ([]string, error) {
	req.Theme = strings.TrimSpace(req.Theme)
	if err := s.check(req); err != nil {
		return nil, err
	}

	prompt, err := prompts.Ideas(prompts.IdeasInput{Theme: req.Theme, Count: req.Count})
	if err != nil {
		return nil, err
	}

	out, err := s.gen.Generate(ctx, prompt, llm.Options{Temperature: req.Temperature, MaxTokens: 512})
	if err != nil {
		return nil, err
	}

	sess.Ideas = OutputLines(out)
	return sess.Ideas, nil
}

func (s *Service) BuildRubric(ctx context.Context, req RubricRequest) (string, error) {
	req.Goal = strings.TrimSpace(req.Goal)
	req.Categories = trimAll(req.Categories)
	if err := s.check(req); err != nil {
		return "", err
	}

	prompt, err := prompts.Rubric(prompts.RubricInput{
		Goal:       req.Goal,
		Categories: req.Categories,
		Scale:      req.Scale,
	})
	if err != nil {
		return "", err
	}

	return s.gen.Generate(ctx, prompt, llm.DefaultOptions())
}

// WriteAnnouncement drafts an announcement and appends it to the session
// history.
func (s *Service) WriteAnnouncement(ctx context.Context, sess *session.Session, req AnnouncementRequest) (string, error) {
	req.EventName = strings.TrimSpace(req.EventName)
	req.Dates = strings.TrimSpace(req.Dates)
	req.Audience = strings.TrimSpace(req.Audience)
	if err := s.check(req); err != nil {
		return "", err
	}

	prompt, err := prompts.Announcement(prompts.AnnouncementInput{
		EventName: req.EventName,
		Dates:     req.Dates,
		Audience:  req.Audience,
		Tone:      req.Tone,
	})
	if err != nil {
		return "", err
	}

	out, err := s.gen.Generate(ctx, prompt, llm.DefaultOptions())
	if err != nil {
		return "", err
	}

	sess.AddAnnouncement(out)
	return out, nil
}

// SuggestTeams parses the participant list and runs the matchmaker. No model
// call is involved.
func (s *Service) SuggestTeams(sess *session.Session, req TeamsRequest) ([]matchmaker.Team, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	participants := roster.Parse(req.Participants)
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	teams, err := matchmaker.Matchmake(participants, req.TeamSize)
	if err != nil {
		return nil, err
	}

	s.log.Info("teams suggested", "participants", len(participants), "teams", len(teams), "team_size", req.TeamSize)
	sess.Teams = teams
	return teams, nil
}

// Judge scores a submission. Output the judging parser cannot read comes back
// as Raw with a Warning and a nil error; the session is only updated on a
// parsed result.
func (s *Service) Judge(ctx context.Context, sess *session.Session, req JudgeRequest) (*Outcome, error) {
	req.Submission = strings.TrimSpace(req.Submission)
	if req.Submission == "" {
		return nil, ErrEmptySubmission
	}
	req.Categories = trimAll(req.Categories)
	if err := s.check(req); err != nil {
		return nil, err
	}

	prompt, err := prompts.Judging(prompts.JudgingInput{
		Submission: req.Submission,
		Categories: req.Categories,
		Scale:      req.Scale,
	})
	if err != nil {
		return nil, err
	}

	out, err := s.gen.Generate(ctx, prompt, llm.DefaultOptions())
	if err != nil {
		return nil, err
	}

	result, err := judging.Parse(out)
	if err != nil {
		s.log.Warn("judging output not parsed", "error", err, "output_chars", len(out))
		return &Outcome{Raw: out, Warning: JudgingWarning}, nil
	}

	sess.AddJudging(*result)
	return &Outcome{Result: result}, nil
}

func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	msgs := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		return describe(fe)
	})
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func trimAll(items []string) []string {
	return lo.Map(items, func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
}
