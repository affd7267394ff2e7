package team

import "fmt"

// Team is a club snapshot within one league/season partition.
type Team struct {
	ID     string
	Name   string
	League string
	Season string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.League == "" || t.Season == "" {
		return fmt.Errorf("team %s league and season are required", t.ID)
	}

	return nil
}

// Distinct keeps the first team per (id, name) pair in input order.
func Distinct(teams []Team) []Team {
	type key struct{ id, name string }
	seen := make(map[key]struct{}, len(teams))
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		k := key{id: t.ID, name: t.Name}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}
