package fbref

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/statframe"
)

const standardTable = `<table id="stats_standard">
<thead>
<tr class="over_header"><th></th><th colspan="2">Playing Time</th></tr>
<tr><th>Player</th><th>Squad</th><th>90s</th></tr>
</thead>
<tbody>
<tr><td>A. Smith</td><td>Arsenal</td><td>2.0</td></tr>
<tr class="thead"><th>Player</th><th>Squad</th><th>90s</th></tr>
<tr><td>B. Jones</td><td>Arsenal</td><td>0.0</td></tr>
</tbody>
</table>`

func TestExtractPlayerTable_CommentedAndVisibleAreEquivalent(t *testing.T) {
	t.Parallel()

	squadTable := `<table id="stats_squads"><thead><tr><th>Squad</th><th>Poss</th></tr></thead><tbody><tr><td>Arsenal</td><td>60</td></tr></tbody></table>`
	visible := `<html><body>` + squadTable + standardTable + `</body></html>`
	commented := `<html><body>` + squadTable + `<div class="placeholder"><!--` + standardTable + `--></div></body></html>`

	want := statframe.Frame{
		Columns: []string{"Player", "Squad", "90s"},
		Rows: [][]string{
			{"A. Smith", "Arsenal", "2.0"},
			{"B. Jones", "Arsenal", "0.0"},
		},
	}

	for name, markup := range map[string]string{"visible": visible, "commented": commented} {
		markup := markup
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractPlayerTable(markup)
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected frame (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractPlayerTable_NoPlayerColumn(t *testing.T) {
	t.Parallel()

	markup := `<html><body><table><thead><tr><th>Squad</th></tr></thead><tbody><tr><td>Arsenal</td></tr></tbody></table></body></html>`
	_, err := ExtractPlayerTable(markup)

	var notFound *NoTableFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NoTableFoundError, got %v", err)
	}
	if notFound.Tables != 1 {
		t.Fatalf("unexpected table count: %d", notFound.Tables)
	}
}

func TestExtractPlayerTable_NoTables(t *testing.T) {
	t.Parallel()

	_, err := ExtractPlayerTable(`<html><body><p>maintenance</p><!-- just a note --></body></html>`)
	var notFound *NoTableFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NoTableFoundError, got %v", err)
	}
}

func TestExtractPlayerTable_HeaderWithoutThead(t *testing.T) {
	t.Parallel()

	markup := `<table><tr><th>Rk</th><th>Player</th></tr><tr><td>1</td><td>A. Smith</td></tr><tr><td>2</td></tr></table>`
	got, err := ExtractPlayerTable(markup)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	want := statframe.Frame{
		Columns: []string{"Rk", "Player"},
		Rows:    [][]string{{"1", "A. Smith"}, {"2", ""}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected frame (-want +got):\n%s", diff)
	}
}

func TestUnwrapComments(t *testing.T) {
	t.Parallel()

	markup := `<html><body><!-- tracking --><div><!--<table><tr><th>Player</th></tr></table>--></div></body></html>`
	got, err := UnwrapComments(markup)
	if err != nil {
		t.Fatalf("unwrap: %v", err)
	}
	if !strings.Contains(got, "<!-- tracking -->") {
		t.Fatalf("non-table comment must be kept: %s", got)
	}
	if strings.Contains(got, "<!--<table") {
		t.Fatalf("table comment must be unwrapped: %s", got)
	}
	if !strings.Contains(got, "<div><table>") {
		t.Fatalf("table must replace its comment in place: %s", got)
	}
}
