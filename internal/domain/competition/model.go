package competition

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Category string

const (
	CategoryStandard   Category = "standard"
	CategoryPassing    Category = "passing"
	CategoryPossession Category = "possession"
	CategoryDefense    Category = "defense"
)

// Categories lists the stat pages in fetch order.
var Categories = []Category{
	CategoryStandard,
	CategoryPassing,
	CategoryPossession,
	CategoryDefense,
}

type pageRoute struct {
	segment string
	suffix  string
}

var routes = map[Category]pageRoute{
	CategoryStandard:   {segment: "stats", suffix: "Stats"},
	CategoryPassing:    {segment: "passing", suffix: "Passing"},
	CategoryPossession: {segment: "possession", suffix: "Possession"},
	CategoryDefense:    {segment: "defense", suffix: "Defense"},
}

// Competition scopes one ingestion run to a league/season partition.
type Competition struct {
	CompID     int    `koanf:"comp_id" validate:"gt=0"`
	SeasonSlug string `koanf:"season_slug" validate:"required"`
	League     string `koanf:"league" validate:"required"`
	Season     string `koanf:"season"`
}

var (
	validate      = validator.New()
	seasonSlugRe  = regexp.MustCompile(`^(\d{4})-(\d{4})$`)
	nonAlnumRegex = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// Normalize trims fields and derives Season from SeasonSlug when it is empty
// ("2023-2024" becomes "2023-24").
func (c Competition) Normalize() Competition {
	c.SeasonSlug = strings.TrimSpace(c.SeasonSlug)
	c.League = strings.TrimSpace(c.League)
	c.Season = strings.TrimSpace(c.Season)
	if c.Season == "" {
		if m := seasonSlugRe.FindStringSubmatch(c.SeasonSlug); m != nil {
			c.Season = m[1] + "-" + m[2][2:]
		} else {
			c.Season = c.SeasonSlug
		}
	}
	return c
}

func (c Competition) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid competition %q %q: %w", c.League, c.SeasonSlug, err)
	}
	return nil
}

// SeasonToken is the season with separators removed, used as an identifier suffix.
func (c Competition) SeasonToken() string {
	return nonAlnumRegex.ReplaceAllString(c.Season, "")
}

func (c Competition) String() string {
	return c.League + " " + c.Season
}

// Path returns the site path of the player table page for category.
func (c Competition) Path(category Category) (string, error) {
	route, ok := routes[category]
	if !ok {
		return "", fmt.Errorf("unknown stat category %q", category)
	}
	league := strings.ReplaceAll(c.League, " ", "-")
	return fmt.Sprintf("/en/comps/%d/%s/%s/players/%d-%s-players-%s-%s",
		c.CompID, c.SeasonSlug, route.segment, c.CompID, c.SeasonSlug, league, route.suffix), nil
}
