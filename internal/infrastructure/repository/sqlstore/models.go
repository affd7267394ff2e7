package sqlstore

import (
	"github.com/riskibarqy/fbref-teamfit/internal/domain/featureorder"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/player"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/playerstats"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/team"
	"github.com/riskibarqy/fbref-teamfit/internal/domain/teamstats"
)

const (
	teamsTable        = "teams"
	playersTable      = "players"
	playerStatsTable  = "player_season_stats"
	teamStatsTable    = "team_season_stats"
	featureOrderTable = "feature_order"
)

type teamTableModel struct {
	TeamID   string `db:"team_id"`
	TeamName string `db:"team_name"`
	League   string `db:"league"`
	Season   string `db:"season"`
}

type playerTableModel struct {
	PlayerID    string  `db:"player_id"`
	PlayerName  string  `db:"player_name"`
	PrimaryPos  string  `db:"primary_pos"`
	DOB         *string `db:"dob" ddl:"DATE"`
	Nationality *string `db:"nationality"`
	Foot        *string `db:"foot"`
	HeightCM    *int    `db:"height_cm"`
}

type playerStatTableModel struct {
	PlayerID                   string   `db:"player_id"`
	TeamID                     string   `db:"team_id"`
	League                     string   `db:"league"`
	Season                     string   `db:"season"`
	Minutes                    int      `db:"minutes"`
	ProgressivePassesPer90     float64  `db:"progressive_passes_per90"`
	ProgressiveCarriesPer90    float64  `db:"progressive_carries_per90"`
	CarriesIntoFinalThirdPer90 float64  `db:"carries_into_final_third_per90"`
	DribblesCompletedPer90     float64  `db:"dribbles_completed_per90"`
	ShotsPer90                 float64  `db:"shots_per90"`
	XGPer90                    float64  `db:"xg_per90"`
	XAPer90                    float64  `db:"xa_per90"`
	TacklesInterceptionsPer90  float64  `db:"tackles_interceptions_per90"`
	PressuresPer90             float64  `db:"pressures_per90"`
	AerialsWonPct              *float64 `db:"aerials_won_pct"`
	CrossesIntoBoxPer90        float64  `db:"crosses_into_box_per90"`
	ThroughBallsCompletedPer90 float64  `db:"through_balls_completed_per90"`
}

type teamStatTableModel struct {
	TeamID                       string   `db:"team_id"`
	League                       string   `db:"league"`
	Season                       string   `db:"season"`
	Minutes                      int64    `db:"minutes"`
	ProgressivePassesPer90       *float64 `db:"progressive_passes_per90"`
	ProgressiveCarriesPer90      *float64 `db:"progressive_carries_per90"`
	CrossesIntoBoxPer90          float64  `db:"crosses_into_box_per90"`
	ThroughBallsCompletedPer90   float64  `db:"through_balls_completed_per90"`
	PressuresAtt3rdPer90         *float64 `db:"pressures_att3rd_per90"`
	AerialsWinPct                *float64 `db:"aerials_win_pct"`
	PossessionPct                *float64 `db:"possession_pct"`
	PassesPer90                  *float64 `db:"passes_per90"`
	OppPassesAllowedPerDefAction *float64 `db:"opp_passes_allowed_per_def_action"`
}

type featureOrderTableModel struct {
	Feature string `db:"feature"`
	Ord     int    `db:"ord"`
}

func teamToModel(t team.Team) teamTableModel {
	return teamTableModel{TeamID: t.ID, TeamName: t.Name, League: t.League, Season: t.Season}
}

func playerToModel(p player.Player) playerTableModel {
	return playerTableModel{
		PlayerID:    p.ID,
		PlayerName:  p.Name,
		PrimaryPos:  p.PrimaryPos,
		DOB:         p.DOB,
		Nationality: p.Nationality,
		Foot:        p.Foot,
		HeightCM:    p.HeightCM,
	}
}

func playerStatToModel(s playerstats.SeasonStat) playerStatTableModel {
	return playerStatTableModel{
		PlayerID:                   s.PlayerID,
		TeamID:                     s.TeamID,
		League:                     s.League,
		Season:                     s.Season,
		Minutes:                    s.Minutes,
		ProgressivePassesPer90:     s.ProgressivePassesPer90,
		ProgressiveCarriesPer90:    s.ProgressiveCarriesPer90,
		CarriesIntoFinalThirdPer90: s.CarriesIntoFinalThirdPer90,
		DribblesCompletedPer90:     s.DribblesCompletedPer90,
		ShotsPer90:                 s.ShotsPer90,
		XGPer90:                    s.XGPer90,
		XAPer90:                    s.XAPer90,
		TacklesInterceptionsPer90:  s.TacklesInterceptionsPer90,
		PressuresPer90:             s.PressuresPer90,
		AerialsWonPct:              s.AerialsWonPct,
		CrossesIntoBoxPer90:        s.CrossesIntoBoxPer90,
		ThroughBallsCompletedPer90: s.ThroughBallsCompletedPer90,
	}
}

func (m playerStatTableModel) toDomain() playerstats.SeasonStat {
	return playerstats.SeasonStat{
		PlayerID:                   m.PlayerID,
		TeamID:                     m.TeamID,
		League:                     m.League,
		Season:                     m.Season,
		Minutes:                    m.Minutes,
		ProgressivePassesPer90:     m.ProgressivePassesPer90,
		ProgressiveCarriesPer90:    m.ProgressiveCarriesPer90,
		CarriesIntoFinalThirdPer90: m.CarriesIntoFinalThirdPer90,
		DribblesCompletedPer90:     m.DribblesCompletedPer90,
		ShotsPer90:                 m.ShotsPer90,
		XGPer90:                    m.XGPer90,
		XAPer90:                    m.XAPer90,
		TacklesInterceptionsPer90:  m.TacklesInterceptionsPer90,
		PressuresPer90:             m.PressuresPer90,
		AerialsWonPct:              m.AerialsWonPct,
		CrossesIntoBoxPer90:        m.CrossesIntoBoxPer90,
		ThroughBallsCompletedPer90: m.ThroughBallsCompletedPer90,
	}
}

func teamStatToModel(s teamstats.SeasonStat) teamStatTableModel {
	return teamStatTableModel{
		TeamID:                       s.TeamID,
		League:                       s.League,
		Season:                       s.Season,
		Minutes:                      int64(s.Minutes),
		ProgressivePassesPer90:       s.ProgressivePassesPer90,
		ProgressiveCarriesPer90:      s.ProgressiveCarriesPer90,
		CrossesIntoBoxPer90:          s.CrossesIntoBoxPer90,
		ThroughBallsCompletedPer90:   s.ThroughBallsCompletedPer90,
		PressuresAtt3rdPer90:         s.PressuresAtt3rdPer90,
		AerialsWinPct:                s.AerialsWinPct,
		PossessionPct:                s.PossessionPct,
		PassesPer90:                  s.PassesPer90,
		OppPassesAllowedPerDefAction: s.OppPassesAllowedPerDefAction,
	}
}

func (m teamStatTableModel) toDomain() teamstats.SeasonStat {
	return teamstats.SeasonStat{
		TeamID:                       m.TeamID,
		League:                       m.League,
		Season:                       m.Season,
		Minutes:                      int(m.Minutes),
		PossessionPct:                m.PossessionPct,
		PassesPer90:                  m.PassesPer90,
		ProgressivePassesPer90:       m.ProgressivePassesPer90,
		ProgressiveCarriesPer90:      m.ProgressiveCarriesPer90,
		CrossesIntoBoxPer90:          m.CrossesIntoBoxPer90,
		ThroughBallsCompletedPer90:   m.ThroughBallsCompletedPer90,
		OppPassesAllowedPerDefAction: m.OppPassesAllowedPerDefAction,
		PressuresAtt3rdPer90:         m.PressuresAtt3rdPer90,
		AerialsWinPct:                m.AerialsWinPct,
	}
}

func featureToModel(f featureorder.Feature) featureOrderTableModel {
	return featureOrderTableModel{Feature: f.Name, Ord: f.Ord}
}
