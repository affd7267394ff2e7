package teamstats

// SeasonStat is a team's minutes-weighted profile for a league/season.
// Pointer metrics are nil when no weighted value exists; PossessionPct,
// PassesPer90 and OppPassesAllowedPerDefAction are reserved and always nil.
type SeasonStat struct {
	TeamID  string
	League  string
	Season  string
	Minutes int

	PossessionPct                *float64
	PassesPer90                  *float64
	ProgressivePassesPer90       *float64
	ProgressiveCarriesPer90      *float64
	CrossesIntoBoxPer90          float64
	ThroughBallsCompletedPer90   float64
	OppPassesAllowedPerDefAction *float64
	PressuresAtt3rdPer90         *float64
	AerialsWinPct                *float64
}
