package statframe

import (
	"regexp"
	"strings"
)

var nonColumnRegex = regexp.MustCompile(`[^a-z0-9_]+`)

// NormalizeColumn lowercases h, collapses every run of characters outside
// [a-z0-9_] into one underscore and trims underscores from both ends.
func NormalizeColumn(h string) string {
	return strings.Trim(nonColumnRegex.ReplaceAllString(strings.ToLower(h), "_"), "_")
}

// Canonical column names after normalization, with the labels older page
// revisions used for the same statistic.
var (
	ColPlayer      = []string{"player"}
	ColSquad       = []string{"squad"}
	ColPos         = []string{"pos"}
	ColNineties    = []string{"90s"}
	ColMinutes     = []string{"min"}
	ColProgPasses  = []string{"prgp", "prog"}
	ColProgCarries = []string{"prgc"}
	ColFinalThird  = []string{"carries_into_final_third", "1_3"}
	ColDribbleAtt  = []string{"att_dribbles"}
	ColDribbleSucc = []string{"succ"}
	ColPressures   = []string{"pressures", "press"}
	ColTklInt      = []string{"tkl_int"}
	ColAerialWon   = []string{"aer_won", "aerials_won"}
	ColAerialLost  = []string{"aer_lost", "aerials_lost"}
)
