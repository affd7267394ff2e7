package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/competition"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/usecase"
)

// statsPage carries every column the four category tables are read for, so
// one page can answer each category request.
const statsPage = `<html><body><div id="all_stats"><!--
<table>
<thead><tr><th>Rk</th><th>Player</th><th>Pos</th><th>Squad</th><th>Min</th><th>90s</th><th>PrgP</th><th>PrgC</th><th>Tkl+Int</th></tr></thead>
<tbody>
<tr><td>1</td><td>A. Smith</td><td>MF</td><td>Arsenal</td><td>1,800</td><td>20.0</td><td>40</td><td>60</td><td>30</td></tr>
<tr><td>2</td><td>B. Jones</td><td>DF</td><td>Chelsea</td><td>900</td><td>10.0</td><td>5</td><td>2</td><td>20</td></tr>
</tbody>
</table>
--></div></body></html>`

func newStatsServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(statsPage))
	}))
	t.Cleanup(server.Close)
	return server
}

func setTestEnv(t *testing.T, baseURL, dbURL string) {
	t.Helper()
	t.Setenv("APP_ENV", "dev")
	t.Setenv("APP_LOG_LEVEL", "error")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("COMPETITIONS_FILE", "")
	t.Setenv("FBREF_BASE_URL", baseURL)
	t.Setenv("FBREF_REQUEST_DELAY", "0s")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("PERSIST_POLICY", "append")
	t.Setenv("DB_URL", dbURL)
}

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	active.close()
	active = nil
	if err != nil {
		t.Fatalf("teamfit %s: %v\noutput:\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestIngest_DryRunPrintsRowCount(t *testing.T) {
	server := newStatsServer(t)
	setTestEnv(t, server.URL, "sqlite://"+filepath.Join(t.TempDir(), "unused.db"))

	out := execute(t, "ingest", "--dry-run")

	if !strings.Contains(out, "Ingested 2 player-season rows for Premier League 2023-24\n") {
		t.Fatalf("missing ingest summary:\n%s", out)
	}
	if got := strings.Count(out, "Fetching "); got != len(competition.Categories) {
		t.Fatalf("expected one progress line per category, got %d:\n%s", got, out)
	}
}

func TestInitIngestCheck_SQLite(t *testing.T) {
	server := newStatsServer(t)
	setTestEnv(t, server.URL, "sqlite://"+filepath.Join(t.TempDir(), "teamfit.db"))

	if out := execute(t, "init"); !strings.Contains(out, "seeded 7 features") {
		t.Fatalf("unexpected init output: %q", out)
	}
	execute(t, "ingest", "--dry-run=false")

	out := execute(t, "check", "--limit", "1")
	for _, want := range []string{"player_season_stats", "a_smith_202324", "arsenal_202324", "poss_pct"} {
		if !strings.Contains(out, want) {
			t.Fatalf("check output is missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "b_jones_202324") {
		t.Fatalf("limit 1 must show only the highest-minute player:\n%s", out)
	}
}

func TestPrintIngested(t *testing.T) {
	var out bytes.Buffer
	printIngested(&out, []usecase.IngestionResult{
		{Competition: competition.Competition{League: "Premier League", Season: "2023-24"}, PlayerRows: 512},
		{Competition: competition.Competition{League: "La Liga", Season: "2023-24"}, PlayerRows: 498},
	})

	want := "Ingested 512 player-season rows for Premier League 2023-24\n" +
		"Ingested 498 player-season rows for La Liga 2023-24\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRenderReport_ShowsNullForMissingRates(t *testing.T) {
	var out bytes.Buffer
	renderReport(&out, usecase.Report{
		Teams:          1,
		TopPlayerStats: []playerstats.SeasonStat{{PlayerID: "b_jones_202324", Minutes: 0}},
		FeatureOrder:   featureorder.Defaults(),
	})

	if !strings.Contains(out.String(), "NULL") || !strings.Contains(out.String(), "aerials_win_pct") {
		t.Fatalf("unexpected report:\n%s", out.String())
	}
}

func TestParseMigrationArgs(t *testing.T) {
	if steps, err := parseSteps(nil); err != nil || steps != 1 {
		t.Fatalf("default steps: %d %v", steps, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatalf("expected error for zero steps")
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if target, err := parseTarget("1771800000"); err != nil || target != 1771800000 {
		t.Fatalf("unexpected target: %d %v", target, err)
	}
}
