package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/competition"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/statframe"
	"github.com/riskibarqy/fbref-teamfit/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fbref-teamfit/internal/platform/logging"
)

type stubStatsSource struct {
	frames map[competition.Category]statframe.Frame
	err    map[competition.Category]error
	calls  []competition.Category
}

func (s *stubStatsSource) FetchTable(_ context.Context, _ competition.Competition, category competition.Category) (statframe.Frame, error) {
	s.calls = append(s.calls, category)
	if err := s.err[category]; err != nil {
		return statframe.Frame{}, err
	}
	frame, ok := s.frames[category]
	if !ok {
		return statframe.Frame{}, fmt.Errorf("no frame for %s", category)
	}
	return frame, nil
}

type ingestionFixture struct {
	service     *IngestionService
	teams       *memory.TeamRepository
	players     *memory.PlayerRepository
	playerStats *memory.PlayerStatsRepository
	teamStats   *memory.TeamStatsRepository
}

func newIngestionFixture(source StatsSource, policy PersistPolicy) ingestionFixture {
	teams := memory.NewTeamRepository(nil)
	players := memory.NewPlayerRepository(nil)
	playerStats := memory.NewPlayerStatsRepository()
	teamStats := memory.NewTeamStatsRepository(playerStats)

	service := NewIngestionService(source, teams, players, playerStats, teamStats,
		IngestionConfig{Policy: policy}, logging.NewNop(), nil)
	return ingestionFixture{
		service:     service,
		teams:       teams,
		players:     players,
		playerStats: playerStats,
		teamStats:   teamStats,
	}
}

func TestIngestionService_Run_PersistsAndAggregates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := &stubStatsSource{frames: scenarioFrames()}
	fx := newIngestionFixture(source, PersistAppend)

	result, err := fx.service.Run(ctx, premierLeague())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.PlayerRows != 2 || result.Teams != 1 || result.Players != 2 || result.TeamStats != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(source.calls) != len(competition.Categories) {
		t.Fatalf("expected one fetch per category, got %v", source.calls)
	}

	top, err := fx.teamStats.TopByMinutes(ctx, 5)
	if err != nil {
		t.Fatalf("top team stats: %v", err)
	}
	if len(top) != 1 || top[0].TeamID != "arsenal_202324" || top[0].Minutes != 1800 {
		t.Fatalf("unexpected team stats: %+v", top)
	}
	// (2.0*1800 + 0*0) / 1800
	if top[0].ProgressivePassesPer90 == nil || math.Abs(*top[0].ProgressivePassesPer90-2) > 1e-9 {
		t.Fatalf("unexpected weighted progressive passes: %v", top[0].ProgressivePassesPer90)
	}

	players := fx.players.List()
	if players[0].DOB != nil || players[0].Nationality != nil || players[0].Foot != nil || players[0].HeightCM != nil {
		t.Fatalf("biographical fields must stay empty: %+v", players[0])
	}
}

func TestIngestionService_Run_AppendDuplicatesOnRerun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newIngestionFixture(&stubStatsSource{frames: scenarioFrames()}, PersistAppend)

	for i := 0; i < 2; i++ {
		if _, err := fx.service.Run(ctx, premierLeague()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	count, _ := fx.playerStats.Count(ctx)
	if count != 4 {
		t.Fatalf("append policy must duplicate player rows, got %d", count)
	}
	teams, _ := fx.teams.Count(ctx)
	if teams != 2 {
		t.Fatalf("append policy must duplicate team rows, got %d", teams)
	}
	// The second aggregate reads both snapshots, so minutes double.
	top, _ := fx.teamStats.TopByMinutes(ctx, 1)
	if len(top) != 1 || top[0].Minutes != 3600 {
		t.Fatalf("unexpected aggregate after rerun: %+v", top)
	}
}

func TestIngestionService_Run_ReplaceKeepsOneSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newIngestionFixture(&stubStatsSource{frames: scenarioFrames()}, PersistReplace)

	for i := 0; i < 2; i++ {
		if _, err := fx.service.Run(ctx, premierLeague()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	for name, repo := range map[string]interface {
		Count(context.Context) (int, error)
	}{
		"player stats": fx.playerStats,
		"players":      fx.players,
	} {
		count, _ := repo.Count(ctx)
		if count != 2 {
			t.Fatalf("%s: expected 2 rows, got %d", name, count)
		}
	}
	teamStats, _ := fx.teamStats.Count(ctx)
	if teamStats != 1 {
		t.Fatalf("expected a single team aggregate, got %d", teamStats)
	}
}

func TestIngestionService_Run_FetchFailureAborts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fetchErr := errors.New("connection reset")
	source := &stubStatsSource{
		frames: scenarioFrames(),
		err:    map[competition.Category]error{competition.CategoryPossession: fetchErr},
	}
	fx := newIngestionFixture(source, PersistAppend)

	_, err := fx.service.Run(ctx, premierLeague())
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if count, _ := fx.playerStats.Count(ctx); count != 0 {
		t.Fatalf("nothing may be persisted after a failed fetch, got %d rows", count)
	}
}

func TestIngestionService_Run_InvalidCompetition(t *testing.T) {
	t.Parallel()

	fx := newIngestionFixture(&stubStatsSource{}, PersistAppend)
	_, err := fx.service.Run(context.Background(), competition.Competition{League: "Premier League"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestIngestionService_RunAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newIngestionFixture(&stubStatsSource{frames: scenarioFrames()}, PersistAppend)

	next := premierLeague()
	next.SeasonSlug = "2024-2025"
	next.Season = ""

	results, err := fx.service.RunAll(ctx, []competition.Competition{premierLeague(), next})
	if err != nil {
		t.Fatalf("run all: %v", err)
	}
	if len(results) != 2 || results[1].Competition.Season != "2024-25" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if count, _ := fx.teamStats.Count(ctx); count != 2 {
		t.Fatalf("expected one aggregate per partition, got %d", count)
	}

	if _, err := fx.service.RunAll(ctx, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty run, got %v", err)
	}
}

func TestParsePersistPolicy(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]PersistPolicy{"": PersistAppend, "APPEND": PersistAppend, " replace ": PersistReplace} {
		got, err := ParsePersistPolicy(input)
		if err != nil || got != want {
			t.Fatalf("ParsePersistPolicy(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParsePersistPolicy("upsert"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
