package studio

import (
	"context"
	"errors"
	"testing"

	"github.com/sant0-9/hacktwin/internal/llm"
	"github.com/sant0-9/hacktwin/internal/logging"
	"github.com/sant0-9/hacktwin/internal/matchmaker"
	"github.com/sant0-9/hacktwin/internal/mocks"
	"github.com/sant0-9/hacktwin/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*Service, *mocks.MockProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("fake").AnyTimes()
	gen := llm.NewGenerator(provider, 0, logging.Discard())
	return NewService(gen, logging.Discard()), provider
}

func reply(text string) *llm.CompletionResponse {
	return &llm.CompletionResponse{Content: text}
}

func TestService_GenerateIdeas(t *testing.T) {
	t.Run("should store the output lines", func(t *testing.T) {
		req := require.New(t)
		svc, provider := newService(t)
		sess := session.New("s")

		provider.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *llm.CompletionRequest) (*llm.CompletionResponse, error) {
				req.Equal(0.6, r.Temperature)
				req.Contains(r.Messages[0].Content, "Suggest 3 concrete")
				req.Contains(r.Messages[0].Content, "AI in agriculture")
				return reply("1. Crop doctor\n\n2. Soil scout\n3. Drone census\n"), nil
			})

		ideas, err := svc.GenerateIdeas(context.Background(), sess, IdeasRequest{
			Theme: "  AI in agriculture ", Count: 3, Temperature: 0.6,
		})

		req.NoError(err)
		req.Equal([]string{"1. Crop doctor", "", "2. Soil scout", "3. Drone census"}, ideas)
		req.Equal(ideas, sess.Ideas)
	})

	t.Run("should reject invalid requests before calling the model", func(t *testing.T) {
		svc, provider := newService(t)
		provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Times(0)

		tests := []IdeasRequest{
			{Theme: "", Count: 5},
			{Theme: "   ", Count: 5},
			{Theme: "x", Count: 0},
			{Theme: "x", Count: 11},
			{Theme: "x", Count: 5, Temperature: 1.5},
		}
		for _, r := range tests {
			_, err := svc.GenerateIdeas(context.Background(), session.New("s"), r)
			require.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("should leave the session untouched on failure", func(t *testing.T) {
		req := require.New(t)
		svc, provider := newService(t)
		sess := session.New("s")
		sess.Ideas = []string{"old"}

		provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, errors.New("quota"))

		_, err := svc.GenerateIdeas(context.Background(), sess, IdeasRequest{Theme: "x", Count: 1})

		req.ErrorIs(err, llm.ErrGeneration)
		req.Equal([]string{"old"}, sess.Ideas)
	})
}

func TestService_BuildRubric(t *testing.T) {
	t.Run("should send categories and scale", func(t *testing.T) {
		req := require.New(t)
		svc, provider := newService(t)

		provider.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *llm.CompletionRequest) (*llm.CompletionResponse, error) {
				req.Contains(r.Messages[0].Content, `"Impact"`)
				req.Contains(r.Messages[0].Content, "0-10")
				return reply("| Category | ... |"), nil
			})

		out, err := svc.BuildRubric(context.Background(), RubricRequest{
			Goal: "Assess impact", Categories: []string{" Impact "}, Scale: "0-10",
		})

		req.NoError(err)
		req.Equal("| Category | ... |", out)
	})

	t.Run("should reject bad requests", func(t *testing.T) {
		svc, provider := newService(t)
		provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Times(0)

		tests := []RubricRequest{
			{Goal: "", Categories: []string{"a"}, Scale: "0-5"},
			{Goal: "g", Categories: nil, Scale: "0-5"},
			{Goal: "g", Categories: []string{"a"}, Scale: "1-7"},
		}
		for _, r := range tests {
			_, err := svc.BuildRubric(context.Background(), r)
			require.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestService_WriteAnnouncement(t *testing.T) {
	req := require.New(t)
	svc, provider := newService(t)
	sess := session.New("s")

	provider.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *llm.CompletionRequest) (*llm.CompletionResponse, error) {
			req.Contains(r.Messages[0].Content, "excited")
			return reply("Hack for Good starts Friday!"), nil
		}).
		Times(2)

	ann := AnnouncementRequest{EventName: "Hack for Good", Dates: "Oct 10-12", Audience: "participants", Tone: "Excited"}
	_, err := svc.WriteAnnouncement(context.Background(), sess, ann)
	req.NoError(err)
	_, err = svc.WriteAnnouncement(context.Background(), sess, ann)
	req.NoError(err)

	req.Len(sess.Announcements, 2)

	_, err = svc.WriteAnnouncement(context.Background(), sess, AnnouncementRequest{
		EventName: "x", Dates: "y", Audience: "z", Tone: "Grumpy",
	})
	req.ErrorIs(err, ErrInvalidInput)
	req.Contains(err.Error(), "tone must be one of")
	req.Len(sess.Announcements, 2)
}

func TestService_SuggestTeams(t *testing.T) {
	svc, _ := newService(t)

	t.Run("should form teams and store them", func(t *testing.T) {
		req := require.New(t)
		sess := session.New("s")

		teams, err := svc.SuggestTeams(sess, TeamsRequest{
			Participants: "Alice: python, ml\nBob: javascript, design\nCarol: python, javascript, devops",
			TeamSize:     2,
		})

		req.NoError(err)
		req.Equal([]matchmaker.Team{{"Carol", "Alice"}, {"Bob"}}, teams)
		req.Equal(teams, sess.Teams)
	})

	t.Run("should refuse an empty roster", func(t *testing.T) {
		req := require.New(t)
		sess := session.New("s")
		sess.Teams = []matchmaker.Team{{"keep"}}

		_, err := svc.SuggestTeams(sess, TeamsRequest{Participants: "\n  \n", TeamSize: 3})

		req.ErrorIs(err, ErrNoParticipants)
		req.Equal([]matchmaker.Team{{"keep"}}, sess.Teams)
	})

	t.Run("should reject team sizes outside 2 to 6", func(t *testing.T) {
		for _, size := range []int{0, 1, 7} {
			_, err := svc.SuggestTeams(session.New("s"), TeamsRequest{Participants: "A: x", TeamSize: size})
			require.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestService_Judge(t *testing.T) {
	judgeReq := JudgeRequest{
		Submission: "We built a crop disease detector.",
		Categories: []string{"Originality", "Impact"},
		Scale:      "0-10",
	}

	t.Run("should record a parsed verdict", func(t *testing.T) {
		req := require.New(t)
		svc, provider := newService(t)
		sess := session.New("s")

		provider.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			Return(reply("```json\n"+`{"summary":"Neat","scores":{"Originality":{"score":7,"justification":"Fresh"},"Impact":{"score":9,"justification":"Big"}}}`+"\n```"), nil)

		out, err := svc.Judge(context.Background(), sess, judgeReq)

		req.NoError(err)
		req.NotNil(out.Result)
		req.Equal("Neat", out.Result.Summary)
		req.Len(out.Result.Scores, 2)
		req.Equal("Originality", out.Result.Scores[0].Category)
		req.Equal("7", out.Result.Scores[0].Score)
		req.Len(sess.Judgings, 1)
	})

	t.Run("should fall back to raw text", func(t *testing.T) {
		req := require.New(t)
		svc, provider := newService(t)
		sess := session.New("s")

		provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(reply("I think it is great."), nil)

		out, err := svc.Judge(context.Background(), sess, judgeReq)

		req.NoError(err)
		req.Nil(out.Result)
		req.Equal("I think it is great.", out.Raw)
		req.Equal(JudgingWarning, out.Warning)
		req.Empty(sess.Judgings)
	})

	t.Run("should refuse a blank submission", func(t *testing.T) {
		svc, provider := newService(t)
		provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Times(0)

		r := judgeReq
		r.Submission = "  \n "
		_, err := svc.Judge(context.Background(), session.New("s"), r)
		require.ErrorIs(t, err, ErrEmptySubmission)
	})

	t.Run("should surface generation errors", func(t *testing.T) {
		svc, provider := newService(t)
		sess := session.New("s")
		provider.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))

		_, err := svc.Judge(context.Background(), sess, judgeReq)
		require.ErrorIs(t, err, llm.ErrGeneration)
		require.Empty(t, sess.Judgings)
	})
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []string{"a", "b c"}, SplitLines(" a \n\n b c \r\n"))
	require.Empty(t, SplitLines(""))
}

func TestOutputLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"keeps interior blank lines", "1. a\n\n2. b", []string{"1. a", "", "2. b"}},
		{"drops outer blank lines", "\n  \n1. a  \r\n\n", []string{"1. a"}},
		{"keeps indentation", "1. a\n   detail", []string{"1. a", "   detail"}},
		{"empty", " \n\t", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, OutputLines(tt.input))
		})
	}
}
