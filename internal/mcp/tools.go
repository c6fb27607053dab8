package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"cluegen/internal/config"
	"cluegen/internal/simulate"
	"cluegen/internal/store"
	"cluegen/internal/validate"
)

// maxGames bounds a single simulate_game call.
const maxGames = 100

type SimulateGameInput struct {
	Games int    `json:"games,omitempty" jsonschema:"number of games to play, default 1"`
	Days  int    `json:"days,omitempty" jsonschema:"day limit per game, default 5"`
	Seed  uint64 `json:"seed,omitempty" jsonschema:"seed of the first game; 0 picks one"`
}

type ListRunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum runs to return"`
}

type ClueStatsInput struct {
	RunID string `json:"run_id,omitempty" jsonschema:"restrict to one run; empty aggregates every run"`
}

type ListCluesInput struct {
	RunID string `json:"run_id" jsonschema:"run id"`
	Giver string `json:"giver,omitempty" jsonschema:"only clues given by this character"`
}

type GetTuningInput struct{}

type ValidatePopulationInput struct{}

type RunOutput struct {
	ID          string `json:"id"`
	Seed        uint64 `json:"seed"`
	Days        int    `json:"days"`
	Phases      int    `json:"phases"`
	Deaths      int    `json:"deaths"`
	Werewolf    string `json:"werewolf"`
	WerewolfWon bool   `json:"werewolf_won"`
	Clues       int    `json:"clues"`
	Lies        int    `json:"lies"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type SimulateGameOutput struct {
	Runs           []RunOutput `json:"runs"`
	CluesGenerated int         `json:"clues_generated"`
	LiesGenerated  int         `json:"lies_generated"`
	GhostClues     int         `json:"ghost_clues"`
	Errors         []string    `json:"errors,omitempty"`
}

type ListRunsOutput struct {
	Runs []RunOutput `json:"runs"`
}

type ClueStatOutput struct {
	Type            string  `json:"type"`
	Total           int     `json:"total"`
	Lies            int     `json:"lies"`
	AboutWerewolf   int     `json:"about_werewolf"`
	TruthfulPercent float64 `json:"truthful_percent"`
}

type ClueStatsOutput struct {
	Stats []ClueStatOutput `json:"stats"`
}

type ClueOutput struct {
	Phase           int    `json:"phase"`
	Day             int    `json:"day"`
	Giver           string `json:"giver"`
	Subject         string `json:"subject"`
	Type            string `json:"type"`
	Location        string `json:"location,omitempty"`
	IsTruth         bool   `json:"is_truth"`
	GhostDescriptor string `json:"ghost_descriptor,omitempty"`
	Text            string `json:"text"`
}

type ListCluesOutput struct {
	Clues []ClueOutput `json:"clues"`
}

type TuningOutput struct {
	CharacterLieChance             float64 `json:"character_lie_chance"`
	WerewolfLieChance              float64 `json:"werewolf_lie_chance"`
	GhostLieChance                 float64 `json:"ghost_lie_chance"`
	GhostLieChanceFalloff          float64 `json:"ghost_lie_chance_falloff"`
	GhostLieChanceFalloffPerDay    float64 `json:"ghost_lie_chance_falloff_per_day"`
	AllowLateGameUniqueIdentifiers bool    `json:"allow_late_game_unique_identifiers"`
	DeathsToClassifyLateGame       int     `json:"deaths_to_classify_late_game"`
}

type IssueOutput struct {
	Severity  string `json:"severity"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Character string `json:"character,omitempty"`
}

type ValidatePopulationOutput struct {
	Issues []IssueOutput `json:"issues"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "simulate_game",
		Description: "Play headless games with the current tuning and journal their clues",
	}, s.handleSimulateGame)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_runs",
		Description: "List journaled runs, newest first",
	}, s.handleListRuns)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "clue_stats",
		Description: "Per clue type totals, lies and werewolf mentions",
	}, s.handleClueStats)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_clues",
		Description: "List the clues of one run, optionally by giver",
	}, s.handleListClues)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_tuning",
		Description: "Return the clue generation tuning in effect",
	}, s.handleGetTuning)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "validate_population",
		Description: "Check the population for structural and balance problems",
	}, s.handleValidatePopulation)
}

func (s *Server) handleSimulateGame(ctx context.Context, req *sdk.CallToolRequest, input SimulateGameInput) (*sdk.CallToolResult, SimulateGameOutput, error) {
	if input.Games < 0 || input.Games > maxGames {
		return nil, SimulateGameOutput{}, fmt.Errorf("games must be between 1 and %d, or omitted for one game", maxGames)
	}
	if input.Days < 0 {
		return nil, SimulateGameOutput{}, fmt.Errorf("days must not be negative")
	}

	var journal simulate.Journal
	if s.db != nil {
		journal = s.db
	}
	result, err := simulate.Run(ctx, s.cfg, s.population, journal, simulate.Options{
		Games: input.Games,
		Days:  input.Days,
		Seed:  input.Seed,
	})
	if err != nil {
		return nil, SimulateGameOutput{}, err
	}

	output := SimulateGameOutput{
		Runs:           make([]RunOutput, 0, len(result.Runs)),
		CluesGenerated: result.CluesGenerated,
		LiesGenerated:  result.LiesGenerated,
		GhostClues:     result.GhostClues,
	}
	for _, summary := range result.Runs {
		output.Runs = append(output.Runs, runOutputFromSummary(summary))
	}
	for _, err := range result.Errors {
		output.Errors = append(output.Errors, err.Error())
	}
	return nil, output, nil
}

func (s *Server) handleListRuns(ctx context.Context, req *sdk.CallToolRequest, input ListRunsInput) (*sdk.CallToolResult, ListRunsOutput, error) {
	runs, err := s.db.ListRuns(ctx, input.Limit)
	if err != nil {
		return nil, ListRunsOutput{}, err
	}

	output := make([]RunOutput, 0, len(runs))
	for _, run := range runs {
		output = append(output, runOutputFromStore(run))
	}
	return nil, ListRunsOutput{Runs: output}, nil
}

func (s *Server) handleClueStats(ctx context.Context, req *sdk.CallToolRequest, input ClueStatsInput) (*sdk.CallToolResult, ClueStatsOutput, error) {
	stats, err := s.db.ClueStats(ctx, input.RunID)
	if err != nil {
		return nil, ClueStatsOutput{}, err
	}

	output := make([]ClueStatOutput, 0, len(stats))
	for _, stat := range stats {
		output = append(output, ClueStatOutput{
			Type:            stat.Type,
			Total:           stat.Total,
			Lies:            stat.Lies,
			AboutWerewolf:   stat.AboutWerewolf,
			TruthfulPercent: stat.TruthfulPercent,
		})
	}
	return nil, ClueStatsOutput{Stats: output}, nil
}

func (s *Server) handleListClues(ctx context.Context, req *sdk.CallToolRequest, input ListCluesInput) (*sdk.CallToolResult, ListCluesOutput, error) {
	if input.RunID == "" {
		return nil, ListCluesOutput{}, fmt.Errorf("run_id is required")
	}
	clues, err := s.db.ListClues(ctx, input.RunID, input.Giver)
	if err != nil {
		return nil, ListCluesOutput{}, err
	}

	output := make([]ClueOutput, 0, len(clues))
	for _, c := range clues {
		output = append(output, clueOutputFromStore(c))
	}
	return nil, ListCluesOutput{Clues: output}, nil
}

func (s *Server) handleGetTuning(ctx context.Context, req *sdk.CallToolRequest, input GetTuningInput) (*sdk.CallToolResult, TuningOutput, error) {
	return nil, tuningOutputFromConfig(s.cfg.Tuning), nil
}

func (s *Server) handleValidatePopulation(ctx context.Context, req *sdk.CallToolRequest, input ValidatePopulationInput) (*sdk.CallToolResult, ValidatePopulationOutput, error) {
	report, err := validate.Run(s.population, s.cfg.Tuning)
	if err != nil {
		return nil, ValidatePopulationOutput{}, err
	}

	output := make([]IssueOutput, 0, len(report.Issues))
	for _, issue := range report.Issues {
		output = append(output, IssueOutput{
			Severity:  string(issue.Severity),
			Code:      issue.Code,
			Message:   issue.Message,
			Character: issue.Character,
		})
	}
	return nil, ValidatePopulationOutput{Issues: output}, nil
}

func runOutputFromSummary(summary simulate.RunSummary) RunOutput {
	return RunOutput{
		ID:          summary.ID,
		Seed:        summary.Seed,
		Days:        summary.Days,
		Phases:      summary.Phases,
		Deaths:      summary.Deaths,
		Werewolf:    summary.Werewolf,
		WerewolfWon: summary.WerewolfWon,
		Clues:       summary.Clues,
		Lies:        summary.Lies,
	}
}

func runOutputFromStore(run store.Run) RunOutput {
	out := RunOutput{
		ID:          run.ID,
		Seed:        run.Seed,
		Days:        run.Days,
		Phases:      run.Phases,
		Deaths:      run.Deaths,
		Werewolf:    run.Werewolf,
		WerewolfWon: run.WerewolfWon,
		Clues:       run.Clues,
		Lies:        run.Lies,
	}
	if !run.CreatedAt.IsZero() {
		out.CreatedAt = run.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func clueOutputFromStore(c store.ClueRecord) ClueOutput {
	return ClueOutput{
		Phase:           c.Phase,
		Day:             c.Day,
		Giver:           c.Giver,
		Subject:         c.Subject,
		Type:            c.Type,
		Location:        c.LocationName,
		IsTruth:         c.IsTruth,
		GhostDescriptor: c.GhostDescriptor,
		Text:            c.Text,
	}
}

func tuningOutputFromConfig(t config.Tuning) TuningOutput {
	return TuningOutput{
		CharacterLieChance:             t.CharacterLieChance,
		WerewolfLieChance:              t.WerewolfLieChance,
		GhostLieChance:                 t.GhostLieChance,
		GhostLieChanceFalloff:          t.GhostLieChanceFalloff,
		GhostLieChanceFalloffPerDay:    t.GhostLieChanceFalloffPerDay,
		AllowLateGameUniqueIdentifiers: t.AllowLateGameUniqueIdentifiers,
		DeathsToClassifyLateGame:       t.DeathsToClassifyLateGame,
	}
}
