package service

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/leaguestats/internal/models"
	"github.com/omarshaarawi/leaguestats/internal/waivers"
)

const waiverReportSize = 10

func (s *LeagueService) GetSeasons() string {
	seasons := s.Seasons()
	if len(seasons) == 0 {
		return "No seasons loaded yet."
	}
	parts := make([]string, len(seasons))
	for i, season := range seasons {
		parts[i] = fmt.Sprintf("%d", season)
	}
	return fmt.Sprintf("📅 *Seasons*\n\n%s", strings.Join(parts, ", "))
}

func (s *LeagueService) GetStandings(season, week int) (string, error) {
	rows, week, err := s.Standings(season, week)
	if err != nil {
		return "", fmt.Errorf("error fetching standings: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *%d Standings, Week %d*\n\n", season, week))
	for _, team := range rows {
		sb.WriteString(fmt.Sprintf("%d. *%s*%s\n", team.Rank, team.Team, movement(team.RankDelta)))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d-%d\n", team.Wins, team.Losses, team.Ties))
		sb.WriteString(fmt.Sprintf("   Points For: %.2f\n", team.PointsFor))
		sb.WriteString(fmt.Sprintf("   Points Against: %.2f\n\n", team.PointsAgainst))
	}
	return sb.String(), nil
}

func movement(delta *int) string {
	switch {
	case delta == nil || *delta == 0:
		return ""
	case *delta > 0:
		return fmt.Sprintf(" ▲%d", *delta)
	default:
		return fmt.Sprintf(" ▼%d", -*delta)
	}
}

func (s *LeagueService) GetDraft(season int) (string, error) {
	rows, err := s.DraftBoard(season)
	if err != nil {
		return "", fmt.Errorf("error fetching draft: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%d Draft*\n\n", season))
	round := 0
	for _, r := range rows {
		if r.Pick.Round != round {
			round = r.Pick.Round
			sb.WriteString(fmt.Sprintf("\n*Round %d*\n", round))
		}
		sb.WriteString(fmt.Sprintf("%s %s %s %s (%s) - %s%s\n",
			heatIcon(r.Heat), r.PickLabel, r.Pick.Position, r.Pick.Player, r.Pick.ManagerName,
			r.EndOfSeasonRank, deltaLabel(r.DeltaRank)))
	}
	return sb.String(), nil
}

func heatIcon(h models.HeatTier) string {
	switch h {
	case models.HeatHot:
		return "🔥"
	case models.HeatWarm:
		return "🟢"
	case models.HeatMild:
		return "🟡"
	case models.HeatCool:
		return "🟠"
	case models.HeatCold:
		return "🧊"
	default:
		return "▫️"
	}
}

func deltaLabel(delta *int) string {
	if delta == nil {
		return ""
	}
	return fmt.Sprintf(" (%+d)", *delta)
}

func (s *LeagueService) GetOwners(season int) (string, error) {
	rows, err := s.OwnerSummaries(season)
	if err != nil {
		return "", fmt.Errorf("error fetching owner summaries: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 *%d Draft by Owner*\n\n", season))
	for _, r := range rows {
		avg := "-"
		if r.AverageScore != nil {
			avg = fmt.Sprintf("%.2f", *r.AverageScore)
		}
		sb.WriteString(fmt.Sprintf("*%s*: %d picks, total %.2f, avg %s\n", r.Owner, r.Picks, r.TotalScore, avg))
	}
	return sb.String(), nil
}

func (s *LeagueService) GetDraftLeaders() string {
	lb := s.DraftLeaders()

	var sb strings.Builder
	sb.WriteString("🥇 *Best Drafts*\n")
	writeOwnerSeasons(&sb, lb.BestDrafts)
	sb.WriteString("\n🥴 *Worst Drafts*\n")
	writeOwnerSeasons(&sb, lb.WorstDrafts)
	sb.WriteString("\n💎 *Best Picks*\n")
	writeScoreRecords(&sb, lb.BestPicks)
	sb.WriteString("\n💀 *Biggest Busts*\n")
	writeScoreRecords(&sb, lb.WorstPicks)
	sb.WriteString("\n1️⃣ *First Overall Picks*\n")
	writeScoreRecords(&sb, lb.FirstOverall)
	return sb.String()
}

func writeOwnerSeasons(sb *strings.Builder, rows []models.OwnerSummaryRow) {
	for i, r := range rows {
		avg := 0.0
		if r.AverageScore != nil {
			avg = *r.AverageScore
		}
		sb.WriteString(fmt.Sprintf("%d. %s %d (avg %.2f)\n", i+1, r.Owner, r.Season, avg))
	}
}

func writeScoreRecords(sb *strings.Builder, rows []models.ScoreRecord) {
	for i, r := range rows {
		sb.WriteString(fmt.Sprintf("%d. %s %s, %s %d (%.2f)\n", i+1, r.Position, r.Player, r.Owner, r.Season, r.SeasonScore))
	}
}

func (s *LeagueService) GetRecords() string {
	r := s.Records()

	var sb strings.Builder
	sb.WriteString("📈 *Highest Scores*\n")
	for i, w := range r.HighestWeeks {
		sb.WriteString(fmt.Sprintf("%d. %s %.2f (%d W%d)\n", i+1, w.Team, w.Points, w.Season, w.Week))
	}
	sb.WriteString("\n📉 *Lowest Scores*\n")
	for i, w := range r.LowestWeeks {
		sb.WriteString(fmt.Sprintf("%d. %s %.2f (%d W%d)\n", i+1, w.Team, w.Points, w.Season, w.Week))
	}
	sb.WriteString("\n🚀 *Highest Season Points*\n")
	for i, p := range r.HighestSeasons {
		sb.WriteString(fmt.Sprintf("%d. %s %.2f in %d (%.2f avg)\n", i+1, p.Team, p.PointsFor, p.Season, p.Average))
	}
	sb.WriteString("\n🐢 *Lowest Season Points*\n")
	for i, p := range r.LowestSeasons {
		sb.WriteString(fmt.Sprintf("%d. %s %.2f in %d (%.2f avg)\n", i+1, p.Team, p.PointsFor, p.Season, p.Average))
	}
	sb.WriteString("\n💥 *Biggest Blowouts*\n")
	for i, g := range r.Blowouts {
		winner, loser := g.Winner()
		sb.WriteString(fmt.Sprintf("%d. %s over %s by %.2f (%d W%d)\n", i+1, winner, loser, g.Margin(), g.Season, g.Week))
	}
	sb.WriteString("\n🔥 *Highest Combined*\n")
	for i, g := range r.HighestCombined {
		sb.WriteString(fmt.Sprintf("%d. %s %.2f - %.2f %s (%d W%d)\n", i+1, g.TeamA, g.PointsA, g.PointsB, g.TeamB, g.Season, g.Week))
	}
	sb.WriteString("\n🧊 *Lowest Combined*\n")
	for i, g := range r.LowestCombined {
		sb.WriteString(fmt.Sprintf("%d. %s %.2f - %.2f %s (%d W%d)\n", i+1, g.TeamA, g.PointsA, g.PointsB, g.TeamB, g.Season, g.Week))
	}
	sb.WriteString("\n*Streaks*\n")
	sb.WriteString(fmt.Sprintf("Longest Winning Streak: %s (%d)\n", r.LongestWinStreak.Team, r.LongestWinStreak.Length))
	sb.WriteString(fmt.Sprintf("Longest Losing Streak: %s (%d)\n", r.LongestLoseStreak.Team, r.LongestLoseStreak.Length))
	sb.WriteString("\n👑 *Weekly High Scores*\n")
	for _, c := range r.WeeklyHighScores {
		sb.WriteString(fmt.Sprintf("%s: %d\n", c.Team, c.Count))
	}
	sb.WriteString("\n🥉 *Weekly Top 3 Scores*\n")
	for _, c := range r.WeeklyTopThree {
		sb.WriteString(fmt.Sprintf("%s: %d\n", c.Team, c.Count))
	}
	return sb.String()
}

func (s *LeagueService) GetFinalStandings(season int) (string, error) {
	rows, err := s.FinalStandings(season)
	if err != nil {
		return "", fmt.Errorf("error fetching final standings: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏁 *%d Final Standings*\n\n", season))
	for _, r := range rows {
		rank := "-"
		if r.EndRank != nil {
			rank = fmt.Sprintf("%d", *r.EndRank)
		}
		sb.WriteString(fmt.Sprintf("%s. *%s*\n", rank, r.Team))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d-%d\n", r.Wins, r.Losses, r.Ties))
		sb.WriteString(fmt.Sprintf("   PF: %.2f  PA: %.2f\n\n", r.PointsFor, r.PointsAgainst))
	}
	return sb.String(), nil
}

func (s *LeagueService) GetMedals(season int) (string, error) {
	years, err := s.Medals(season)
	if err != nil {
		return "", fmt.Errorf("error fetching medals: %w", err)
	}
	if len(years) == 0 {
		return "No medals found.", nil
	}

	var sb strings.Builder
	for _, y := range years {
		sb.WriteString(fmt.Sprintf("🏅 *%d Medals*\n", y.Season))
		for _, m := range y.Medals {
			sb.WriteString(fmt.Sprintf("🥇 %s %s (%s)\n", m.Position, m.Player, m.Owner))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (s *LeagueService) GetTrophies(season, week int) (string, error) {
	trophies, err := s.Trophies(season, week)
	if err != nil {
		return "", fmt.Errorf("error fetching trophies: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *%d Week %d Trophies:*\n", season, week))
	for _, t := range trophies {
		switch t.Category {
		case "High Score":
			sb.WriteString(fmt.Sprintf("Highest Score: %s (%.2f)\n", t.Team, t.Value))
		case "Low Score":
			sb.WriteString(fmt.Sprintf("Lowest Score: %s (%.2f)\n", t.Team, t.Value))
		case "Biggest Win":
			sb.WriteString(fmt.Sprintf("Biggest Win: %s (Margin: %.2f)\n", t.Team, t.Value))
		case "Closest Win":
			sb.WriteString(fmt.Sprintf("Closest Win: %s (Margin: %.2f)\n", t.Team, t.Value))
		}
	}
	return sb.String(), nil
}

// GetWaivers lists the best pickups of a season, or of all time when season
// is 0.
func (s *LeagueService) GetWaivers(season int) string {
	var rows []models.WaiverPickup
	title := "🧲 *Top Waiver Pickups (All-Time)*"
	if season == 0 {
		rows = s.TopWaivers(waivers.Filter{})
	} else {
		rows = s.Waivers(waivers.Filter{Season: season}, waivers.DefaultSort)
		title = fmt.Sprintf("🧲 *%d Top Waiver Pickups*", season)
	}
	if len(rows) > waiverReportSize {
		rows = rows[:waiverReportSize]
	}

	var sb strings.Builder
	sb.WriteString(title + "\n\n")
	if len(rows) == 0 {
		sb.WriteString("No waiver pickups found.")
		return sb.String()
	}
	for i, r := range rows {
		sb.WriteString(fmt.Sprintf("%d. %s %s, %s %d: %.1f pts in %d weeks (%.1f avg)\n",
			i+1, r.Position, r.Player, r.Owner, r.Season, r.PointsAfterPickup, r.WeeksPlayed, r.AvgPoints))
	}
	return sb.String()
}

func (s *LeagueService) GetPick(query string) string {
	matches := s.FindPicks(query)
	if len(matches) == 0 {
		return fmt.Sprintf("🔍 No drafted player found matching '%s'.", query)
	}

	var sb strings.Builder
	for _, m := range matches {
		r := m.Row
		score := "TBD"
		if r.SeasonScore != nil {
			score = fmt.Sprintf("%.2f", *r.SeasonScore)
		}
		sb.WriteString(fmt.Sprintf("*%s* (%s) %d\n", r.Pick.Player, r.Pick.Position, r.Pick.Season))
		sb.WriteString(fmt.Sprintf("Pick %s by %s, %s%d drafted\n", r.PickLabel, r.Pick.ManagerName, r.Pick.Position, derefInt(r.PositionalDraftRank)))
		sb.WriteString(fmt.Sprintf("Finished %s, score %s\n\n", r.EndOfSeasonRank, score))
	}
	return sb.String()
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// GetLatestTrophies reports the trophies of the most recent week with games
// in the current season.
func (s *LeagueService) GetLatestTrophies() (string, error) {
	season := s.LastSeason()
	week := 0
	for _, g := range s.league().Games[season] {
		week = max(week, g.Week)
	}
	return s.GetTrophies(season, week)
}
