package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sant0-9/hacktwin/internal/llm"
	"github.com/sant0-9/hacktwin/internal/logging"
	"github.com/sant0-9/hacktwin/internal/mocks"
	"github.com/sant0-9/hacktwin/internal/session"
	"github.com/sant0-9/hacktwin/internal/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	server   *httptest.Server
	client   *http.Client
	provider *mocks.MockProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("fake").AnyTimes()

	store, err := session.OpenBadgerStore(time.Hour, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := studio.NewService(llm.NewGenerator(provider, 0, logging.Discard()), logging.Discard())
	srv := httptest.NewServer(New(svc, store, time.Hour, logging.Discard()).Router())
	t.Cleanup(srv.Close)

	jar := newJar(t)
	return &fixture{
		server:   srv,
		client:   &http.Client{Jar: jar},
		provider: provider,
	}
}

func (f *fixture) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.server.URL+path, form)
	require.NoError(t, err)
	return readBody(t, resp)
}

func (f *fixture) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := f.client.Get(f.server.URL + path)
	require.NoError(t, err)
	return readBody(t, resp)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	resp, err := f.client.Get(f.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	status, body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestIndexSetsSessionCookie(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)
}

func TestIndexUnknownTabFallsBackToIdeas(t *testing.T) {
	f := newFixture(t)

	status, body := f.get(t, "/?tab=bogus")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `action="/ideas"`)
}

func TestTeams(t *testing.T) {
	t.Run("should render formed teams", func(t *testing.T) {
		f := newFixture(t)

		status, body := f.post(t, "/teams", url.Values{
			"participants": {"Alice: python, ml\nBob: javascript, design\nCarol: python, javascript, devops"},
			"team_size":    {"2"},
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Team 1: Carol, Alice")
		assert.Contains(t, body, "Team 2: Bob")

		// the session remembers the last suggestion
		_, body = f.get(t, "/?tab=teams")
		assert.Contains(t, body, "Team 1: Carol, Alice")
	})

	t.Run("should reject an empty roster inline", func(t *testing.T) {
		f := newFixture(t)

		status, body := f.post(t, "/teams", url.Values{"participants": {"   "}, "team_size": {"3"}})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body, `class="error"`)
		assert.Contains(t, body, "no participants parsed")
	})
}

func TestIdeas(t *testing.T) {
	t.Run("should show generated ideas", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			Return(&llm.CompletionResponse{Content: "1. Crop doctor\n2. Soil scout"}, nil)

		status, body := f.post(t, "/ideas", url.Values{"theme": {"farming"}, "count": {"2"}, "temperature": {"0.5"}})

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "1. Crop doctor")
	})

	t.Run("should replace earlier ideas with the latest ones", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.provider.EXPECT().
				Complete(gomock.Any(), gomock.Any()).
				Return(&llm.CompletionResponse{Content: "1. First batch idea"}, nil),
			f.provider.EXPECT().
				Complete(gomock.Any(), gomock.Any()).
				Return(&llm.CompletionResponse{Content: "1. Second batch idea"}, nil),
		)

		_, body := f.post(t, "/ideas", url.Values{"theme": {"farming"}})
		assert.Contains(t, body, "First batch idea")

		_, body = f.post(t, "/ideas", url.Values{"theme": {"farming"}})
		assert.Contains(t, body, "Second batch idea")
		assert.NotContains(t, body, "First batch idea")
	})

	t.Run("should keep earlier ideas when generation fails", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.provider.EXPECT().
				Complete(gomock.Any(), gomock.Any()).
				Return(&llm.CompletionResponse{Content: "1. Kept idea"}, nil),
			f.provider.EXPECT().
				Complete(gomock.Any(), gomock.Any()).
				Return(nil, errors.New("quota exceeded")),
		)

		f.post(t, "/ideas", url.Values{"theme": {"farming"}})
		status, body := f.post(t, "/ideas", url.Values{"theme": {"farming"}})

		assert.Equal(t, http.StatusBadGateway, status)
		assert.Contains(t, body, "Kept idea")
	})

	t.Run("should map model failures to bad gateway", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("quota exceeded"))

		status, body := f.post(t, "/ideas", url.Values{"theme": {"farming"}})

		assert.Equal(t, http.StatusBadGateway, status)
		assert.Contains(t, body, "quota exceeded")
	})

	t.Run("should reject a bad count", func(t *testing.T) {
		f := newFixture(t)

		status, _ := f.post(t, "/ideas", url.Values{"theme": {"farming"}, "count": {"many"}})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestAnnouncementsShowsRecentFive(t *testing.T) {
	f := newFixture(t)

	n := 0
	f.provider.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *llm.CompletionRequest) (*llm.CompletionResponse, error) {
			n++
			return &llm.CompletionResponse{Content: "Draft " + string(rune('A'+n-1))}, nil
		}).
		Times(7)

	var body string
	for range 7 {
		var status int
		status, body = f.post(t, "/announcements", url.Values{
			"event_name": {"Hack for Good"},
			"dates":      {"Oct 10-12"},
			"audience":   {"participants"},
			"tone":       {"Casual"},
		})
		require.Equal(t, http.StatusOK, status)
	}

	assert.Contains(t, body, "Announcement 7")
	assert.Contains(t, body, "Announcement 3")
	assert.NotContains(t, body, "Announcement 2<")
	assert.Less(t, strings.Index(body, "Draft G"), strings.Index(body, "Draft C"))
}

func TestJudging(t *testing.T) {
	t.Run("should render scores", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			Return(&llm.CompletionResponse{
				Content: `{"summary":"Strong demo","scores":{"Impact":{"score":8,"justification":"Helps farmers"}}}`,
			}, nil)

		status, body := f.post(t, "/judging", url.Values{
			"submission": {"Crop doctor app"},
			"categories": {"Impact"},
			"scale":      {"0-10"},
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "Strong demo")
		assert.Contains(t, body, "Helps farmers")
	})

	t.Run("should show raw text with a warning", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().
			Complete(gomock.Any(), gomock.Any()).
			Return(&llm.CompletionResponse{Content: "Looks promising overall."}, nil)

		status, body := f.post(t, "/judging", url.Values{
			"submission": {"Crop doctor app"},
			"categories": {"Impact"},
			"scale":      {"0-10"},
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `class="warning"`)
		assert.Contains(t, body, "Looks promising overall.")
	})

	t.Run("should refuse an empty submission", func(t *testing.T) {
		f := newFixture(t)

		status, body := f.post(t, "/judging", url.Values{"submission": {""}, "scale": {"0-10"}})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body, "paste submission content first")
	})
}

func TestSessionStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(nil, errors.New("disk on fire"))

	svc := studio.NewService(llm.NewGenerator(mocks.NewMockProvider(ctrl), 0, logging.Discard()), logging.Discard())
	h := New(svc, store, time.Hour, logging.Discard())

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(studio.ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, statusFor(studio.ErrNoParticipants))
	assert.Equal(t, http.StatusBadGateway, statusFor(llm.ErrGeneration))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("other")))
}
