package querybuilder

import (
	"database/sql"
	"strings"
	"testing"
)

type sampleRow struct {
	ID       string          `db:"id"`
	Minutes  int             `db:"minutes"`
	Rate     float64         `db:"rate"`
	Pct      *float64        `db:"pct"`
	Born     sql.NullString  `db:"born" ddl:"DATE"`
	Height   sql.NullFloat64 `db:"height_cm"`
	internal string
	Skipped  string `db:"-"`
}

func TestCreateTableModel(t *testing.T) {
	got, err := CreateTableModel("samples", sampleRow{})
	if err != nil {
		t.Fatalf("create table: %v", err)
	}

	want := "CREATE TABLE IF NOT EXISTS samples (\n" +
		"    id TEXT,\n" +
		"    minutes INTEGER,\n" +
		"    rate DOUBLE PRECISION,\n" +
		"    pct DOUBLE PRECISION,\n" +
		"    born DATE,\n" +
		"    height_cm DOUBLE PRECISION\n" +
		")"
	if got != want {
		t.Fatalf("unexpected ddl:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestCreateTableModel_RejectsNonStruct(t *testing.T) {
	if _, err := CreateTableModel("samples", 42); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	if _, err := CreateTableModel("", sampleRow{}); err == nil {
		t.Fatalf("expected error for empty table name")
	}
}

func TestInsertModels(t *testing.T) {
	pct := 75.0
	rows := []sampleRow{
		{ID: "a", Minutes: 180, Rate: 2, Pct: &pct},
		{ID: "b", Minutes: 0},
	}

	query, args, err := InsertModels("samples", rows, "")
	if err != nil {
		t.Fatalf("insert models: %v", err)
	}

	wantQuery := "INSERT INTO samples (id, minutes, rate, pct, born, height_cm) VALUES (?, ?, ?, ?, ?, ?), (?, ?, ?, ?, ?, ?)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 12 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
	if got, ok := args[3].(*float64); !ok || *got != 75 {
		t.Fatalf("unexpected pct arg: %#v", args[3])
	}
	if got, ok := args[9].(*float64); !ok || got != nil {
		t.Fatalf("expected nil pct for second row, got %#v", args[9])
	}
}

func TestInsertModels_Empty(t *testing.T) {
	if _, _, err := InsertModels[sampleRow]("samples", nil, ""); err == nil {
		t.Fatalf("expected error for empty batch")
	}
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("samples", &sampleRow{ID: "a"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO samples (id, minutes, rate, pct, born, height_cm) VALUES (?, ?, ?, ?, ?, ?)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if args[0] != "a" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestModelColumns(t *testing.T) {
	got, err := ModelColumns(&sampleRow{})
	if err != nil {
		t.Fatalf("model columns: %v", err)
	}
	if strings.Join(got, ",") != "id,minutes,rate,pct,born,height_cm" {
		t.Fatalf("unexpected columns: %v", got)
	}
	if _, err := ModelColumns(struct{ Name string }{}); err == nil {
		t.Fatalf("expected error for model without db tags")
	}
}
