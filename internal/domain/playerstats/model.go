package playerstats

// SeasonStat is one player's per-90 profile for a team within a league/season.
// Rates are finite and non-negative; AerialsWonPct is nil when the player
// contested no aerial duels.
type SeasonStat struct {
	PlayerID string
	TeamID   string
	League   string
	Season   string
	Minutes  int

	ProgressivePassesPer90     float64
	ProgressiveCarriesPer90    float64
	CarriesIntoFinalThirdPer90 float64
	DribblesCompletedPer90     float64
	ShotsPer90                 float64
	XGPer90                    float64
	XAPer90                    float64
	TacklesInterceptionsPer90  float64
	PressuresPer90             float64
	AerialsWonPct              *float64
	CrossesIntoBoxPer90        float64
	ThroughBallsCompletedPer90 float64
}
