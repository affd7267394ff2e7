package sqlstore

import (
	"context"
	"math"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/player"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/team"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/teamstats"
)

type testStore struct {
	teams        *TeamRepository
	players      *PlayerRepository
	playerStats  *PlayerStatsRepository
	teamStats    *TeamStatsRepository
	featureOrder *FeatureOrderRepository
}

func newTestStore(t *testing.T) testStore {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store := testStore{
		teams:        NewTeamRepository(db),
		players:      NewPlayerRepository(db),
		playerStats:  NewPlayerStatsRepository(db),
		teamStats:    NewTeamStatsRepository(db),
		featureOrder: NewFeatureOrderRepository(db),
	}

	ctx := context.Background()
	for name, ensure := range map[string]func(context.Context) error{
		"teams":         store.teams.EnsureSchema,
		"players":       store.players.EnsureSchema,
		"player stats":  store.playerStats.EnsureSchema,
		"team stats":    store.teamStats.EnsureSchema,
		"feature order": store.featureOrder.EnsureSchema,
	} {
		if err := ensure(ctx); err != nil {
			t.Fatalf("ensure %s schema: %v", name, err)
		}
		// A second call must be a no-op.
		if err := ensure(ctx); err != nil {
			t.Fatalf("ensure %s schema twice: %v", name, err)
		}
	}
	return store
}

func pct(v float64) *float64 { return &v }

func samplePlayerStats() []playerstats.SeasonStat {
	return []playerstats.SeasonStat{
		{PlayerID: "a_smith_202324", TeamID: "arsenal_202324", League: "Premier League", Season: "2023-24", Minutes: 900, ProgressivePassesPer90: 4, PressuresPer90: 10, AerialsWonPct: pct(50)},
		{PlayerID: "b_jones_202324", TeamID: "arsenal_202324", League: "Premier League", Season: "2023-24", Minutes: 300, ProgressivePassesPer90: 8, PressuresPer90: 20},
		{PlayerID: "c_brown_202324", TeamID: "chelsea_202324", League: "Premier League", Season: "2023-24", Minutes: 0, ProgressivePassesPer90: 0},
		{PlayerID: "d_white_202223", TeamID: "arsenal_202223", League: "Premier League", Season: "2022-23", Minutes: 500, ProgressivePassesPer90: 1},
	}
}

func TestTeamStatsRepository_AggregateMatchesInMemoryAggregate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	stats := samplePlayerStats()

	if err := store.playerStats.Append(ctx, stats); err != nil {
		t.Fatalf("append player stats: %v", err)
	}

	got, err := store.teamStats.AggregateFromPlayerStats(ctx, "Premier League", "2023-24")
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := teamstats.Aggregate(stats[:3])
	if len(got) != len(want) {
		t.Fatalf("unexpected team count: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i].TeamID != want[i].TeamID || got[i].Minutes != want[i].Minutes {
			t.Fatalf("row %d mismatch: got=%+v want=%+v", i, got[i], want[i])
		}
		assertSamePtr(t, "progressive passes", got[i].ProgressivePassesPer90, want[i].ProgressivePassesPer90)
		assertSamePtr(t, "pressures", got[i].PressuresAtt3rdPer90, want[i].PressuresAtt3rdPer90)
		assertSamePtr(t, "aerials", got[i].AerialsWinPct, want[i].AerialsWinPct)
	}

	if err := store.teamStats.Append(ctx, got); err != nil {
		t.Fatalf("append team stats: %v", err)
	}
	top, err := store.teamStats.TopByMinutes(ctx, 1)
	if err != nil {
		t.Fatalf("top team stats: %v", err)
	}
	if len(top) != 1 || top[0].TeamID != "arsenal_202324" || top[0].Minutes != 1200 {
		t.Fatalf("unexpected top team: %+v", top)
	}
	if top[0].PossessionPct != nil || top[0].PassesPer90 != nil || top[0].OppPassesAllowedPerDefAction != nil {
		t.Fatalf("reserved metrics must read back as NULL: %+v", top[0])
	}
}

func assertSamePtr(t *testing.T, name string, got, want *float64) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Fatalf("%s: nil mismatch got=%v want=%v", name, got, want)
	}
	if got != nil && math.Abs(*got-*want) > 1e-9 {
		t.Fatalf("%s: got=%v want=%v", name, *got, *want)
	}
}

func TestPlayerStatsRepository_AppendAndReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	stats := samplePlayerStats()

	for i := 0; i < 2; i++ {
		if err := store.playerStats.Append(ctx, stats); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if n, _ := store.playerStats.Count(ctx); n != 8 {
		t.Fatalf("append must keep duplicates, got %d rows", n)
	}

	if err := store.playerStats.ReplacePartition(ctx, "Premier League", "2023-24", stats[:3]); err != nil {
		t.Fatalf("replace: %v", err)
	}
	// Two 2022-23 snapshots survive next to the three replaced rows.
	if n, _ := store.playerStats.Count(ctx); n != 5 {
		t.Fatalf("unexpected rows after replace: %d", n)
	}

	rows, err := store.playerStats.ListByPartition(ctx, "Premier League", "2023-24")
	if err != nil {
		t.Fatalf("list partition: %v", err)
	}
	if len(rows) != 3 || rows[0].PlayerID != "a_smith_202324" {
		t.Fatalf("unexpected partition rows: %+v", rows)
	}
	if rows[0].AerialsWonPct == nil || *rows[0].AerialsWonPct != 50 || rows[1].AerialsWonPct != nil {
		t.Fatalf("aerial pct must round trip including NULL: %+v", rows[:2])
	}

	top, err := store.playerStats.TopByMinutes(ctx, 2)
	if err != nil {
		t.Fatalf("top player stats: %v", err)
	}
	if len(top) != 2 || top[0].Minutes != 900 {
		t.Fatalf("unexpected top players: %+v", top)
	}
}

func TestTeamAndPlayerRepositories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	teams := []team.Team{{ID: "arsenal_202324", Name: "Arsenal", League: "Premier League", Season: "2023-24"}}
	if err := store.teams.Append(ctx, teams); err != nil {
		t.Fatalf("append teams: %v", err)
	}
	if err := store.teams.ReplacePartition(ctx, "Premier League", "2023-24", teams); err != nil {
		t.Fatalf("replace teams: %v", err)
	}
	if n, _ := store.teams.Count(ctx); n != 1 {
		t.Fatalf("unexpected team count: %d", n)
	}
	if err := store.teams.Append(ctx, []team.Team{{ID: "x"}}); err == nil {
		t.Fatalf("expected validation error for incomplete team")
	}

	players := []player.Player{
		{ID: "a_smith_202324", Name: "A. Smith", PrimaryPos: "MF"},
		{ID: "b_jones_202324", Name: "B. Jones", PrimaryPos: "NA"},
	}
	if err := store.players.Append(ctx, players); err != nil {
		t.Fatalf("append players: %v", err)
	}
	if err := store.players.Append(ctx, players); err != nil {
		t.Fatalf("append players again: %v", err)
	}
	if n, _ := store.players.Count(ctx); n != 4 {
		t.Fatalf("append must duplicate players, got %d", n)
	}
	if err := store.players.ReplaceByIDs(ctx, players); err != nil {
		t.Fatalf("replace players: %v", err)
	}
	if n, _ := store.players.Count(ctx); n != 2 {
		t.Fatalf("replace must leave one row per id, got %d", n)
	}
}

func TestFeatureOrderRepository_ReplaceNeverAppends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 2; i++ {
		if err := store.featureOrder.Replace(ctx, featureorder.Defaults()); err != nil {
			t.Fatalf("replace %d: %v", i, err)
		}
	}

	got, err := store.featureOrder.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 7 || got[0].Name != "poss_pct" || got[6].Name != "aerials_win_pct" {
		t.Fatalf("unexpected feature order: %+v", got)
	}
}
