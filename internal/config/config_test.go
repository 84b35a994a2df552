package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/league")

	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/srv/league", c.Data.Dir)
	assert.Equal(t, ":80", c.HTTP.Addr)
	assert.Equal(t, "120-M", c.HTTP.RateLimit)
	assert.Equal(t, []string{"*"}, c.HTTP.AllowedOrigins)
	assert.Equal(t, "America/Chicago", c.Schedule.Location)
	assert.Equal(t, "*/30 * * * *", c.Schedule.RefreshCron)
	assert.Equal(t, 2015, c.League.FirstSeason)
	assert.Equal(t, 2025, c.League.LastSeason)
	assert.Equal(t, 16, c.League.MaxWeek)
	assert.Equal(t, 15, c.League.PlayoffStartWeek)
	assert.Empty(t, c.League.DraftExcludeSeasons)
	assert.Empty(t, c.TelegramBot.Token)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("DATA_BASE_URL", "https://example.com/fantasy-dashboard/data")
	t.Setenv("DRAFT_EXCLUDE_SEASONS", "2024,2025")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CHAT_ID", "-100123")

	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025}, c.League.DraftExcludeSeasons)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.HTTP.AllowedOrigins)
	assert.Equal(t, int64(-100123), c.TelegramBot.ChatID)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no data source", map[string]string{}},
		{"bad cron", map[string]string{"DATA_DIR": "x", "REFRESH_CRON": "sometimes"}},
		{"bad location", map[string]string{"DATA_DIR": "x", "SCHEDULE_LOCATION": "Mars/Olympus"}},
		{"seasons reversed", map[string]string{"DATA_DIR": "x", "FIRST_SEASON": "2024", "LAST_SEASON": "2020"}},
		{"no weeks", map[string]string{"DATA_DIR": "x", "MAX_WEEK": "0"}},
		{"not a number", map[string]string{"DATA_DIR": "x", "MAX_WEEK": "sixteen"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATA_DIR", "")
			t.Setenv("DATA_BASE_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := New()
			assert.Error(t, err)
		})
	}
}
