package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New("abc")
	assert.Equal(t, "abc", s.ID)
	assert.Empty(t, s.Ideas)
	assert.NotNil(t, s.Announcements)
	assert.Empty(t, s.RecentAnnouncements())
}

func TestRecentAnnouncements(t *testing.T) {
	tests := []struct {
		name  string
		added int
		want  []int
	}{
		{"none", 0, []int{}},
		{"one", 1, []int{1}},
		{"exactly five", 5, []int{5, 4, 3, 2, 1}},
		{"seven", 7, []int{7, 6, 5, 4, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("id")
			for i := 1; i <= tt.added; i++ {
				s.AddAnnouncement(fmt.Sprintf("announcement %d", i))
			}

			recent := s.RecentAnnouncements()
			got := make([]int, 0, len(recent))
			for _, a := range recent {
				got = append(got, a.Number)
				assert.Equal(t, fmt.Sprintf("announcement %d", a.Number), a.Text)
			}
			require.Equal(t, tt.want, got)
			assert.Len(t, s.Announcements, tt.added)
		})
	}
}
