package featureorder

// Feature ranks one comparison feature for downstream displays.
type Feature struct {
	Name string
	Ord  int
}

// Defaults is the fixed display order seeded at initialization.
func Defaults() []Feature {
	return []Feature{
		{Name: "poss_pct", Ord: 0},
		{Name: "prog_passes", Ord: 1},
		{Name: "prog_carries", Ord: 2},
		{Name: "crosses_box", Ord: 3},
		{Name: "throughballs", Ord: 4},
		{Name: "press_intensity", Ord: 5},
		{Name: "aerials_win_pct", Ord: 6},
	}
}
