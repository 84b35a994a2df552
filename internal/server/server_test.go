package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/repository/memory"
	"github.com/omarshaarawi/leaguestats/internal/service"
)

type staticLoader struct {
	league *models.League
}

func (l staticLoader) Load(context.Context, *models.League) (*models.League, error) {
	return l.league, nil
}

func newTestServer(t *testing.T, rate string) *Server {
	t.Helper()
	rank := 2
	lg := &models.League{
		Drafts: map[int][]models.DraftPick{
			2024: {{Season: 2024, Round: 1, PickInRound: 1, OverallPick: 1, ManagerName: "Alice", Player: "Bijan Robinson", Position: "RB"}},
		},
		Scores: []models.ScoreRecord{
			{Season: 2024, Owner: "Alice", Player: "Bijan Robinson", Position: "RB", DraftPickNumber: 1, FinalPositionRank: &rank, SeasonScore: 7},
		},
		Weekly: map[int][]models.WeeklySnapshot{
			2024: {{Week: 1, Rows: []models.WeeklyStandingsRow{{Team: "Alice", Wins: 1, PointsFor: 110}, {Team: "Bob", Losses: 1, PointsFor: 95}}}},
		},
		Games: map[int][]models.Game{
			2024: {{Season: 2024, Week: 1, TeamA: "Alice", PointsA: 110, TeamB: "Bob", PointsB: 95}},
		},
		Finals: map[int]models.FinalStandings{
			2024: {
				Regular:  []models.RegularFinalRow{{Team: "Alice", RegularRank: &rank}, {Team: "Bob", RegularRank: intPtr(1)}},
				Playoffs: []models.PlayoffRow{{Team: "Alice", PlayoffRank: intPtr(1)}},
			},
		},
		Medals: []models.MedalYear{
			{Season: 2024, Medals: []models.Medal{{Position: "QB", Player: "Lamar Jackson", Owner: "Bob"}}},
		},
		Waivers: []models.WaiverPickup{
			{Season: 2024, Owner: "Bob", Player: "Jayden Daniels", Position: "QB", WeeksPlayed: 10, PointsAfterPickup: 220},
			{Season: 2024, Owner: "Alice", Player: "Chuba Hubbard", Position: "RB", WeeksPlayed: 8, PointsAfterPickup: 150},
		},
	}
	svc := service.NewLeagueService(staticLoader{league: lg}, memory.NewRepository(), service.Options{LastSeason: 2024})
	require.NoError(t, svc.Reload(context.Background()))

	srv, err := New(svc, Options{RateLimit: rate, AllowedOrigins: []string{"*"}})
	require.NoError(t, err)
	return srv
}

func intPtr(v int) *int { return &v }

func get(t *testing.T, srv http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNew_InvalidRate(t *testing.T) {
	_, err := New(nil, Options{RateLimit: "lots"})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "100-M")
	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
}

func TestGETDraft(t *testing.T) {
	srv := newTestServer(t, "100-M")

	rec := get(t, srv, "/api/drafts/2024")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rows []models.JoinedPickRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "RB#2", rows[0].EndOfSeasonRank)
	assert.Equal(t, "1.01", rows[0].PickLabel)
	assert.Contains(t, rec.Body.String(), `"heat":""`)

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/drafts/2019").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/drafts/abc").Code)

	assert.Equal(t, http.StatusOK, get(t, srv, "/api/drafts/2024/owners").Code)
	assert.Equal(t, http.StatusOK, get(t, srv, "/api/drafts/leaders").Code)
}

func TestGETStandings(t *testing.T) {
	srv := newTestServer(t, "100-M")

	rec := get(t, srv, "/api/standings/2024")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Season int                             `json:"season"`
		Week   int                             `json:"week"`
		Rows   []models.CumulativeStandingsRow `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Week)
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "Alice", body.Rows[0].Team)

	// A week past the last one on file reports the last week.
	rec = get(t, srv, "/api/standings/2024?week=999999")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Week)

	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/standings/2024?week=x").Code)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/standings/2016").Code)
}

func TestGETFinalStandings(t *testing.T) {
	srv := newTestServer(t, "100-M")

	rec := get(t, srv, "/api/standings/2024/final")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []models.FinalStandingsRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	// Alice won the playoffs from the second seed.
	assert.Equal(t, "Alice", rows[0].Team)
	assert.Equal(t, 1, *rows[0].EndRank)
	assert.Equal(t, "Bob", rows[1].Team)

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/standings/2016/final").Code)
}

func TestGETMedals(t *testing.T) {
	srv := newTestServer(t, "100-M")

	rec := get(t, srv, "/api/medals")
	require.Equal(t, http.StatusOK, rec.Code)
	var years []models.MedalYear
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &years))
	require.Len(t, years, 1)
	assert.Equal(t, "Lamar Jackson", years[0].Medals[0].Player)

	assert.Equal(t, http.StatusOK, get(t, srv, "/api/medals?season=2024").Code)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/medals?season=2019").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/medals?season=x").Code)
}

func TestGETRecordsAndTrophies(t *testing.T) {
	srv := newTestServer(t, "100-M")

	assert.Equal(t, http.StatusOK, get(t, srv, "/api/records").Code)

	rec := get(t, srv, "/api/records/2024/1/trophies")
	require.Equal(t, http.StatusOK, rec.Code)
	var trophies []models.Trophy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trophies))
	require.Len(t, trophies, 4)
	assert.Equal(t, "Alice", trophies[0].Team)

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/api/records/2024/5/trophies").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/records/2024/0/trophies").Code)
}

func TestGETWaivers(t *testing.T) {
	srv := newTestServer(t, "100-M")

	var body struct {
		Rows       []models.WaiverPickup `json:"rows"`
		TopAllTime []models.WaiverPickup `json:"topAllTime"`
	}
	rec := get(t, srv, "/api/waivers?noQB=true&sort=Player")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "Chuba Hubbard", body.Rows[0].Player)
	require.Len(t, body.TopAllTime, 1)

	rec = get(t, srv, "/api/waivers?sort=Player&asc=false")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Jayden Daniels", body.Rows[0].Player)

	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/waivers?minWeeks=many").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/waivers?season=20x4").Code)
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, "2-M")

	assert.Equal(t, http.StatusOK, get(t, srv, "/api/seasons").Code)
	assert.Equal(t, http.StatusOK, get(t, srv, "/api/seasons").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, srv, "/api/seasons").Code)

	// Health checks are not limited.
	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, "100-M")

	req := httptest.NewRequest(http.MethodGet, "/api/seasons", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
