package static

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/tabular"
)

var medalPositions = []string{"QB", "RB", "WR", "TE"}

func (a *API) GetTeams(ctx context.Context, season int) ([]models.TeamSeason, error) {
	b, err := a.source.Fetch(ctx, TeamsPath(season))
	if err != nil {
		return nil, fmt.Errorf("fetching teams %d: %w", season, err)
	}
	teams, err := ParseTeams(season, b)
	if err != nil {
		return nil, fmt.Errorf("decoding teams %d: %w", season, err)
	}
	return teams, nil
}

func (a *API) GetRegularFinal(ctx context.Context, season int) ([]models.RegularFinalRow, error) {
	b, err := a.source.Fetch(ctx, RegularFinalPath(season))
	if err != nil {
		return nil, fmt.Errorf("fetching final standings %d: %w", season, err)
	}
	var rows []models.RegularFinalRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decoding final standings %d: %w", season, err)
	}
	return rows, nil
}

func (a *API) GetPlayoffs(ctx context.Context, season int) ([]models.PlayoffRow, error) {
	b, err := a.source.Fetch(ctx, PlayoffsPath(season))
	if err != nil {
		return nil, fmt.Errorf("fetching playoff standings %d: %w", season, err)
	}
	var rows []models.PlayoffRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decoding playoff standings %d: %w", season, err)
	}
	return rows, nil
}

func (a *API) GetMedals(ctx context.Context) ([]models.MedalYear, error) {
	b, err := a.source.Fetch(ctx, PlayersPath)
	if err != nil {
		return nil, fmt.Errorf("fetching medals: %w", err)
	}
	medals, err := ParseMedals(string(b))
	if err != nil {
		return nil, fmt.Errorf("decoding medals: %w", err)
	}
	return medals, nil
}

// number accepts a JSON number, a numeric string in any locale, or null.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = number(tabular.LocaleNum(s))
	return nil
}

type teamJSON struct {
	Team    string `json:"team"`
	Owner   string `json:"owner"`
	Manager string `json:"manager"`
	Wins    number `json:"wins"`
	Losses  number `json:"losses"`
	Ties    number `json:"ties"`
	PF      number `json:"pf"`
	PA      number `json:"pa"`
}

// ParseTeams decodes a season's teams.json. The team name may come as
// team, owner or manager depending on the export.
func ParseTeams(season int, b []byte) ([]models.TeamSeason, error) {
	var raw []teamJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	teams := make([]models.TeamSeason, 0, len(raw))
	for _, t := range raw {
		name := t.Team
		if name == "" {
			name = t.Owner
		}
		if name == "" {
			name = t.Manager
		}
		teams = append(teams, models.TeamSeason{
			Season:        season,
			Team:          name,
			Wins:          int(t.Wins),
			Losses:        int(t.Losses),
			Ties:          int(t.Ties),
			PointsFor:     float64(t.PF),
			PointsAgainst: float64(t.PA),
		})
	}
	return teams, nil
}

// ParseMedals decodes players.tsv, one line per season with the top QB,
// RB, WR and TE and the owner of each. Seasons come back newest first and
// positions without a player are left out.
func ParseMedals(text string) ([]models.MedalYear, error) {
	records, err := tabular.Parse(text, tabular.Tab)
	if err != nil {
		return nil, err
	}

	years := make([]models.MedalYear, 0, len(records))
	for _, r := range records {
		season := tabular.Int(r.First("Year", "Season"))
		if season == 0 {
			continue
		}
		y := models.MedalYear{Season: season}
		for _, pos := range medalPositions {
			player := r.Get(pos)
			if player == "" {
				continue
			}
			y.Medals = append(y.Medals, models.Medal{Position: pos, Player: player, Owner: r.Get("Owner" + pos)})
		}
		years = append(years, y)
	}
	sort.SliceStable(years, func(i, j int) bool { return years[i].Season > years[j].Season })
	return years, nil
}
