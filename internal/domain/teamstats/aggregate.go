package teamstats

import (
	"sort"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
)

// weighted accumulates SUM(metric*minutes) over the rows where the metric is
// present, the way SQL SUM skips NULL terms.
type weighted struct {
	sum     float64
	present bool
}

func (w *weighted) add(v *float64, minutes int) {
	if v == nil {
		return
	}
	w.sum += *v * float64(minutes)
	w.present = true
}

// over divides by the team's total minutes; zero minutes or no present value
// yields nil.
func (w weighted) over(minutes int) *float64 {
	if !w.present || minutes == 0 {
		return nil
	}
	v := w.sum / float64(minutes)
	return &v
}

type accumulator struct {
	league, season string
	minutes        int
	progPasses     weighted
	progCarries    weighted
	pressures      weighted
	aerials        weighted
}

// Aggregate groups player rows by team and computes minutes-weighted means:
// SUM(metric*minutes)/NULLIF(SUM(minutes),0). League and season are taken from
// the first row seen for each team. Output is ordered by team id.
func Aggregate(stats []playerstats.SeasonStat) []SeasonStat {
	byTeam := make(map[string]*accumulator)
	for _, s := range stats {
		acc, ok := byTeam[s.TeamID]
		if !ok {
			acc = &accumulator{league: s.League, season: s.Season}
			byTeam[s.TeamID] = acc
		}
		acc.minutes += s.Minutes
		acc.progPasses.add(&s.ProgressivePassesPer90, s.Minutes)
		acc.progCarries.add(&s.ProgressiveCarriesPer90, s.Minutes)
		acc.pressures.add(&s.PressuresPer90, s.Minutes)
		acc.aerials.add(s.AerialsWonPct, s.Minutes)
	}

	teamIDs := make([]string, 0, len(byTeam))
	for id := range byTeam {
		teamIDs = append(teamIDs, id)
	}
	sort.Strings(teamIDs)

	out := make([]SeasonStat, 0, len(teamIDs))
	for _, id := range teamIDs {
		acc := byTeam[id]
		out = append(out, SeasonStat{
			TeamID:                  id,
			League:                  acc.league,
			Season:                  acc.season,
			Minutes:                 acc.minutes,
			ProgressivePassesPer90:  acc.progPasses.over(acc.minutes),
			ProgressiveCarriesPer90: acc.progCarries.over(acc.minutes),
			PressuresAtt3rdPer90:    acc.pressures.over(acc.minutes),
			AerialsWinPct:           acc.aerials.over(acc.minutes),
		})
	}
	return out
}
