package identity

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyNormalized Strategy = "normalized"
	StrategyFuzzy      Strategy = "fuzzy"

	DefaultFuzzyThreshold = 0.92
)

// Key identifies a player row across category tables.
type Key struct {
	Player string
	Team   string
}

// Index answers lookups against one table's keys.
type Index interface {
	// Lookup returns the position of the row matching target. When several
	// rows match, the first one wins.
	Lookup(target Key) (int, bool)
}

// Resolver decides when two table rows describe the same player.
type Resolver interface {
	Strategy() Strategy
	Index(candidates []Key) Index
}

func NewResolver(strategy Strategy, threshold float64) (Resolver, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(string(strategy)))) {
	case StrategyExact, "":
		return ExactResolver{}, nil
	case StrategyNormalized:
		return NormalizedResolver{}, nil
	case StrategyFuzzy:
		if threshold <= 0 || threshold > 1 {
			return nil, fmt.Errorf("fuzzy threshold must be in (0, 1], got %v", threshold)
		}
		return FuzzyResolver{Threshold: threshold}, nil
	default:
		return nil, fmt.Errorf("unknown entity resolution strategy %q: valid values are %s, %s, %s",
			strategy, StrategyExact, StrategyNormalized, StrategyFuzzy)
	}
}

// ExactResolver matches on case-sensitive equality of player and team names.
type ExactResolver struct{}

func (ExactResolver) Strategy() Strategy { return StrategyExact }

func (ExactResolver) Index(candidates []Key) Index {
	return newMapIndex(candidates, func(k Key) Key { return k })
}

// NormalizedResolver ignores case, accents and punctuation.
type NormalizedResolver struct{}

func (NormalizedResolver) Strategy() Strategy { return StrategyNormalized }

func (NormalizedResolver) Index(candidates []Key) Index {
	return newMapIndex(candidates, normalizeKey)
}

// FuzzyResolver requires the normalized team to match and then accepts the
// most similar player name by Jaro-Winkler similarity at or above Threshold.
type FuzzyResolver struct {
	Threshold float64
}

func (FuzzyResolver) Strategy() Strategy { return StrategyFuzzy }

func (r FuzzyResolver) Index(candidates []Key) Index {
	idx := &fuzzyIndex{
		exact:     newMapIndex(candidates, normalizeKey),
		byTeam:    make(map[string][]int),
		names:     make([]string, len(candidates)),
		threshold: r.Threshold,
	}
	for i, c := range candidates {
		n := normalizeKey(c)
		idx.names[i] = n.Player
		idx.byTeam[n.Team] = append(idx.byTeam[n.Team], i)
	}
	return idx
}

type mapIndex struct {
	keyFn func(Key) Key
	pos   map[Key]int
}

func newMapIndex(candidates []Key, keyFn func(Key) Key) *mapIndex {
	idx := &mapIndex{keyFn: keyFn, pos: make(map[Key]int, len(candidates))}
	for i, c := range candidates {
		k := keyFn(c)
		if _, seen := idx.pos[k]; !seen {
			idx.pos[k] = i
		}
	}
	return idx
}

func (m *mapIndex) Lookup(target Key) (int, bool) {
	i, ok := m.pos[m.keyFn(target)]
	return i, ok
}

type fuzzyIndex struct {
	exact     *mapIndex
	byTeam    map[string][]int
	names     []string
	threshold float64
}

func (f *fuzzyIndex) Lookup(target Key) (int, bool) {
	if i, ok := f.exact.Lookup(target); ok {
		return i, true
	}

	n := normalizeKey(target)
	best, bestScore := -1, 0.0
	for _, i := range f.byTeam[n.Team] {
		score := matchr.JaroWinkler(n.Player, f.names[i], false)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < f.threshold {
		return 0, false
	}
	return best, true
}

func normalizeKey(k Key) Key {
	return Key{Player: NormalizeName(k.Player), Team: NormalizeName(k.Team)}
}

// NormalizeName folds case, strips combining marks and collapses punctuation
// and whitespace to single spaces, so "Héctor  Bellerín" becomes
// "hector bellerin". Letters without a decomposition, such as ø, are kept.
func NormalizeName(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingSpace := false
	for _, r := range strings.ToLower(stripped) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}
