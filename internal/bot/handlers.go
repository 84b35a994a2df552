package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/leaguestats/internal/service"
)

const helpText = "Available commands:\n" +
	"/seasons - List loaded seasons\n" +
	"/draft <season> - Draft board with outcomes\n" +
	"/owners <season> - Draft totals per owner\n" +
	"/leaders - All-time best and worst drafts and picks\n" +
	"/standings <season> [week] - Standings through a week\n" +
	"/final <season> - End-of-season standings\n" +
	"/records - All-time league records\n" +
	"/trophies <season> <week> - Weekly trophies\n" +
	"/waivers [season] - Best waiver pickups\n" +
	"/medals [season] - Top player per position\n" +
	"/pick <player> - Find a drafted player"

type Handler struct {
	leagueService *service.LeagueService
}

func NewHandler(leagueService *service.LeagueService) *Handler {
	return &Handler{leagueService: leagueService}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.Fields(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to League Stats! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "seasons":
		msg.Text = h.leagueService.GetSeasons()
	case "draft":
		h.handleDraft(&msg, args)
	case "owners":
		h.handleOwners(&msg, args)
	case "leaders":
		msg.Text = h.leagueService.GetDraftLeaders()
	case "standings":
		h.handleStandings(&msg, args)
	case "final":
		h.handleFinal(&msg, args)
	case "medals":
		h.handleMedals(&msg, args)
	case "records":
		msg.Text = h.leagueService.GetRecords()
	case "trophies":
		h.handleTrophies(&msg, args)
	case "waivers":
		h.handleWaivers(&msg, args)
	case "pick":
		h.handlePick(&msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

// seasonArg reads args[i] as a season, defaulting to the current season
// when absent.
func (h *Handler) seasonArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return h.leagueService.LastSeason(), nil
	}
	season, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%q is not a season", args[i])
	}
	return season, nil
}

func (h *Handler) handleDraft(msg *tgbotapi.MessageConfig, args []string) {
	season, err := h.seasonArg(args, 0)
	if err != nil {
		msg.Text = "Usage: /draft <season>"
		return
	}
	report, err := h.leagueService.GetDraft(season)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching draft: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleOwners(msg *tgbotapi.MessageConfig, args []string) {
	season, err := h.seasonArg(args, 0)
	if err != nil {
		msg.Text = "Usage: /owners <season>"
		return
	}
	report, err := h.leagueService.GetOwners(season)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching owners: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleFinal(msg *tgbotapi.MessageConfig, args []string) {
	season, err := h.seasonArg(args, 0)
	if err != nil {
		msg.Text = "Usage: /final <season>"
		return
	}
	report, err := h.leagueService.GetFinalStandings(season)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching final standings: %v", err)
	} else {
		msg.Text = report
	}
}

// handleMedals shows every season unless one is named.
func (h *Handler) handleMedals(msg *tgbotapi.MessageConfig, args []string) {
	season := 0
	if len(args) > 0 {
		var err error
		if season, err = strconv.Atoi(args[0]); err != nil {
			msg.Text = "Usage: /medals [season]"
			return
		}
	}
	report, err := h.leagueService.GetMedals(season)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching medals: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleStandings(msg *tgbotapi.MessageConfig, args []string) {
	season, err := h.seasonArg(args, 0)
	if err != nil {
		msg.Text = "Usage: /standings <season> [week]"
		return
	}
	week := 0
	if len(args) > 1 {
		week, err = strconv.Atoi(args[1])
		if err != nil || week < 1 {
			msg.Text = "Usage: /standings <season> [week]"
			return
		}
	}
	standings, err := h.leagueService.GetStandings(season, week)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
	} else {
		msg.Text = standings
	}
}

func (h *Handler) handleTrophies(msg *tgbotapi.MessageConfig, args []string) {
	if len(args) != 2 {
		msg.Text = "Usage: /trophies <season> <week>"
		return
	}
	season, err1 := strconv.Atoi(args[0])
	week, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		msg.Text = "Usage: /trophies <season> <week>"
		return
	}
	report, err := h.leagueService.GetTrophies(season, week)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching trophies: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleWaivers(msg *tgbotapi.MessageConfig, args []string) {
	season := 0
	if len(args) > 0 {
		s, err := strconv.Atoi(args[0])
		if err != nil {
			msg.Text = "Usage: /waivers [season]"
			return
		}
		season = s
	}
	msg.Text = h.leagueService.GetWaivers(season)
}

func (h *Handler) handlePick(msg *tgbotapi.MessageConfig, args []string) {
	if len(args) == 0 {
		msg.Text = "Please provide a player name. Usage: /pick <player name>"
		return
	}
	msg.Text = h.leagueService.GetPick(strings.Join(args, " "))
}
