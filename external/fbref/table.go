package fbref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/statframe"
)

const playerHeader = "Player"

// NoTableFoundError reports a page without any table carrying a Player column.
type NoTableFoundError struct {
	URL    string
	Tables int
}

func (e *NoTableFoundError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("no player table found among %d tables", e.Tables)
	}
	return fmt.Sprintf("no player table found at %s among %d tables", e.URL, e.Tables)
}

// ExtractPlayerTable unwraps commented tables, parses every table on the page
// and returns the first one whose header includes "Player". Repeated header
// rows inside the body are dropped. Column labels are returned as displayed.
func ExtractPlayerTable(markup string) (statframe.Frame, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return statframe.Frame{}, fmt.Errorf("parse html: %w", err)
	}
	if err := unwrapCommentNodes(root); err != nil {
		return statframe.Frame{}, err
	}

	doc := goquery.NewDocumentFromNode(root)
	tables := doc.Find("table")

	var (
		frame statframe.Frame
		found bool
	)
	tables.EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		parsed := parseTable(tbl)
		playerCol := indexOf(parsed.Columns, playerHeader)
		if playerCol < 0 {
			return true
		}
		frame = dropRepeatedHeaders(parsed, playerCol)
		found = true
		return false
	})
	if !found {
		return statframe.Frame{}, &NoTableFoundError{Tables: tables.Length()}
	}
	return frame, nil
}

func parseTable(tbl *goquery.Selection) statframe.Frame {
	headerRow := tbl.Find("thead tr").Last()
	bodyRows := tbl.Find("tbody tr")
	if headerRow.Length() == 0 {
		// Tables without a thead use their first all-th row as the header.
		rows := tbl.Find("tr")
		rows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
			cells := tr.Children()
			if cells.Length() > 0 && cells.Length() == cells.Filter("th").Length() {
				headerRow = tr
				bodyRows = rows.Slice(i+1, rows.Length())
				return false
			}
			return true
		})
		if headerRow.Length() == 0 {
			return statframe.Frame{}
		}
	}

	frame := statframe.Frame{Columns: rowCells(headerRow)}
	bodyRows.Each(func(_ int, tr *goquery.Selection) {
		// Nested tables are parsed on their own.
		if tr.ParentsFiltered("table").First().Get(0) != tbl.Get(0) {
			return
		}
		if tr.HasClass("over_header") {
			return
		}
		cells := rowCells(tr)
		if blank(cells) {
			return
		}
		for len(cells) < len(frame.Columns) {
			cells = append(cells, "")
		}
		frame.Rows = append(frame.Rows, cells[:len(frame.Columns)])
	})
	return frame
}

// rowCells returns the trimmed text of every th/td child, repeating cells
// that span several columns.
func rowCells(tr *goquery.Selection) []string {
	var out []string
	tr.Children().Filter("th, td").Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		span := 1
		if raw, ok := cell.Attr("colspan"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 1 {
				span = n
			}
		}
		for i := 0; i < span; i++ {
			out = append(out, text)
		}
	})
	return out
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func dropRepeatedHeaders(frame statframe.Frame, playerCol int) statframe.Frame {
	rows := frame.Rows[:0:0]
	for _, row := range frame.Rows {
		if row[playerCol] == playerHeader {
			continue
		}
		rows = append(rows, row)
	}
	return statframe.Frame{Columns: frame.Columns, Rows: rows}
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
