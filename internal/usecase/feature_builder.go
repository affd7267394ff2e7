package usecase

import (
	"fmt"
	"math"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/competition"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/identity"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/statframe"
)

const unknownPosition = "NA"

// PlayerFeatures is one merged player-season row together with the display
// values it was derived from.
type PlayerFeatures struct {
	PlayerName string
	TeamName   string
	Position   string
	Stat       playerstats.SeasonStat
}

// categoryColumns lists the count columns each specialized category
// contributes to the merged row.
var categoryColumns = map[competition.Category][][]string{
	competition.CategoryPassing: {
		statframe.ColProgPasses,
	},
	competition.CategoryPossession: {
		statframe.ColProgCarries,
		statframe.ColFinalThird,
		// Zero-filled with the other counts; no feature reads it.
		statframe.ColDribbleAtt,
		statframe.ColDribbleSucc,
	},
	competition.CategoryDefense: {
		statframe.ColPressures,
		statframe.ColTklInt,
		statframe.ColAerialWon,
		statframe.ColAerialLost,
	},
}

// counts holds the merged count columns keyed by canonical column name.
// A count absent from its category table, or from the row that table
// matched, is read as zero: "not recorded" is taken to mean no occurrences,
// which is an approximation consumers should be aware of.
type counts map[string]float64

func (c counts) get(aliases []string) float64 {
	return c[aliases[0]]
}

// BuildPlayerFeatures left-joins the standard table with the passing,
// possession and defense tables on (player, squad) and derives per-90
// features for every standard row. Column labels may be raw or normalized.
func BuildPlayerFeatures(frames map[competition.Category]statframe.Frame, comp competition.Competition, resolver identity.Resolver) ([]PlayerFeatures, error) {
	standard, ok := frames[competition.CategoryStandard]
	if !ok {
		return nil, fmt.Errorf("%w: standard table is required", ErrInvalidInput)
	}
	if resolver == nil {
		resolver = identity.ExactResolver{}
	}

	normalized := standard.Normalize()
	if !normalized.HasColumn(statframe.ColPlayer[0]) || !normalized.HasColumn(statframe.ColSquad[0]) {
		return nil, fmt.Errorf("%w: standard table needs player and squad columns", ErrInvalidInput)
	}
	base := normalized.Records()
	joined := make(map[competition.Category]joinedTable, len(categoryColumns))
	for _, category := range competition.Categories {
		if category == competition.CategoryStandard {
			continue
		}
		frame, ok := frames[category]
		if !ok {
			continue
		}
		joined[category] = newJoinedTable(frame.Normalize().Records(), resolver)
	}

	seasonToken := comp.SeasonToken()
	out := make([]PlayerFeatures, 0, len(base))
	for _, rec := range base {
		playerName, _ := rec.Pick(statframe.ColPlayer...)
		teamName, _ := rec.Pick(statframe.ColSquad...)
		key := identity.Key{Player: playerName, Team: teamName}

		merged := make(counts)
		for _, category := range competition.Categories {
			table, ok := joined[category]
			if !ok {
				continue
			}
			match, ok := table.lookup(key)
			if !ok {
				continue
			}
			for _, aliases := range categoryColumns[category] {
				if v, ok := match.Float(aliases...); ok {
					merged[aliases[0]] = v
				}
			}
		}

		nineties, _ := rec.Float(statframe.ColNineties...)
		minutes, _ := rec.Float(statframe.ColMinutes...)
		position, ok := rec.Pick(statframe.ColPos...)
		if !ok || position == "" {
			position = unknownPosition
		}

		stat := playerstats.SeasonStat{
			PlayerID: identity.Slug(playerName, seasonToken),
			TeamID:   identity.Slug(teamName, seasonToken),
			League:   comp.League,
			Season:   comp.Season,
			Minutes:  int(math.Round(minutes)),

			ProgressivePassesPer90:     per90(merged.get(statframe.ColProgPasses), nineties),
			ProgressiveCarriesPer90:    per90(merged.get(statframe.ColProgCarries), nineties),
			CarriesIntoFinalThirdPer90: per90(merged.get(statframe.ColFinalThird), nineties),
			DribblesCompletedPer90:     per90(merged.get(statframe.ColDribbleSucc), nineties),
			TacklesInterceptionsPer90:  per90(merged.get(statframe.ColTklInt), nineties),
			PressuresPer90:             per90(merged.get(statframe.ColPressures), nineties),
			AerialsWonPct:              aerialWinPct(merged.get(statframe.ColAerialWon), merged.get(statframe.ColAerialLost)),
		}

		out = append(out, PlayerFeatures{
			PlayerName: playerName,
			TeamName:   teamName,
			Position:   position,
			Stat:       stat,
		})
	}
	return out, nil
}

// per90 is count/nineties for a positive denominator and 0 otherwise.
func per90(count, nineties float64) float64 {
	if nineties > 0 && !math.IsNaN(nineties) {
		return count / nineties
	}
	return 0
}

// aerialWinPct is nil when no duel was contested.
func aerialWinPct(won, lost float64) *float64 {
	total := won + lost
	if total <= 0 {
		return nil
	}
	pct := won / total * 100
	return &pct
}

type joinedTable struct {
	records []statframe.Record
	index   identity.Index
}

func newJoinedTable(records []statframe.Record, resolver identity.Resolver) joinedTable {
	keys := make([]identity.Key, len(records))
	for i, rec := range records {
		player, _ := rec.Pick(statframe.ColPlayer...)
		team, _ := rec.Pick(statframe.ColSquad...)
		keys[i] = identity.Key{Player: player, Team: team}
	}
	return joinedTable{records: records, index: resolver.Index(keys)}
}

func (t joinedTable) lookup(key identity.Key) (statframe.Record, bool) {
	i, ok := t.index.Lookup(key)
	if !ok {
		return nil, false
	}
	return t.records[i], true
}
