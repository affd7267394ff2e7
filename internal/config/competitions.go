package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/riskibarqy/fbref-teamfit/internal/domain/competition"
)

type competitionsFile struct {
	Competitions []competition.Competition `koanf:"competitions"`
}

// LoadCompetitionsFile reads a YAML document of the form
//
//	competitions:
//	  - comp_id: 9
//	    season_slug: 2023-2024
//	    league: Premier League
//	    season: 2023-24
//
// The season may be omitted and is then derived from season_slug.
func LoadCompetitionsFile(path string) ([]competition.Competition, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load competitions file %s: %w", path, err)
	}

	var doc competitionsFile
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode competitions file %s: %w", path, err)
	}
	if len(doc.Competitions) == 0 {
		return nil, fmt.Errorf("competitions file %s lists no competitions", path)
	}

	out := make([]competition.Competition, 0, len(doc.Competitions))
	for i, comp := range doc.Competitions {
		comp = comp.Normalize()
		if err := comp.Validate(); err != nil {
			return nil, fmt.Errorf("competitions file %s entry %d: %w", path, i, err)
		}
		out = append(out, comp)
	}
	return out, nil
}
