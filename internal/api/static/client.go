package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// ErrNotFound is returned when a file does not exist in the data store.
var ErrNotFound = errors.New("file not found")

// Source reads raw files from the data store by slash-separated path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// DirSource reads files from a file system, usually os.DirFS(DATA_DIR).
type DirSource struct {
	fsys fs.FS
}

func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

func (d *DirSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(d.fsys, strings.TrimPrefix(path, "/"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return b, nil
}

// Client reads files over HTTP relative to a base URL, the way the
// dashboard's static export is served.
// Requests go through a circuit breaker that opens after five straight
// failures; a missing file is not a failure.
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "data-store",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		}),
	}
}

func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	b, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return b.([]byte), nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimPrefix(path, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	return b, nil
}

// Data store paths.
const (
	ScoresPath   = "league/draft_scores.tsv"
	RankingsPath = "league/season_rankings.csv"
	WaiversPath  = "league/waivers.tsv"
	PlayersPath  = "league/players.tsv"
)

func DraftPath(season int) string {
	return fmt.Sprintf("drafts/%d-draft.tsv", season)
}

func WeeklyStandingsPath(season int) string {
	return fmt.Sprintf("processed/seasons/%d/weekly_standings.json", season)
}

func TeamsPath(season int) string {
	return fmt.Sprintf("processed/seasons/%d/teams.json", season)
}

func RegularFinalPath(season int) string {
	return fmt.Sprintf("processed/seasons/%d/regular_final_standings.json", season)
}

func PlayoffsPath(season int) string {
	return fmt.Sprintf("processed/seasons/%d/playoffs_standings.json", season)
}

func GameCenterPath(season, week int) string {
	return fmt.Sprintf("teamgamecenter/%d/%d.csv", season, week)
}
