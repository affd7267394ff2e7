package player

import "fmt"

// Player is the biographical row of a player snapshot. Only the name and
// primary position are populated by ingestion.
type Player struct {
	ID          string
	Name        string
	PrimaryPos  string
	DOB         *string
	Nationality *string
	Foot        *string
	HeightCM    *int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player %s name is required", p.ID)
	}
	return nil
}

// Distinct keeps the first player per (id, name, position) in input order.
func Distinct(players []Player) []Player {
	type key struct{ id, name, pos string }
	seen := make(map[key]struct{}, len(players))
	out := make([]Player, 0, len(players))
	for _, p := range players {
		k := key{id: p.ID, name: p.Name, pos: p.PrimaryPos}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}

func IDs(players []Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}
