package recommend

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category is the media type a recommendation is drawn from.
type Category string

const (
	TVShows Category = "tv_shows"
	Movies  Category = "movies"
)

// Categories lists the categories in tab order.
var Categories = []Category{TVShows, Movies}

// Label returns the display name used on tabs and cards.
func (c Category) Label() string {
	switch c {
	case TVShows:
		return "TV Shows"
	case Movies:
		return "Movies"
	default:
		return string(c)
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == TVShows || c == Movies
}

// Other returns the category on the opposite tab.
func (c Category) Other() Category {
	if c == Movies {
		return TVShows
	}
	return Movies
}

// queryValue is the service's name for the category.
func (c Category) queryValue() string {
	if c == Movies {
		return "movie"
	}
	return "show"
}

// categoryAliases maps normalized user input to a category, in match priority order.
var categoryAliases = []struct {
	alias    string
	category Category
}{
	{"tv", TVShows},
	{"tv shows", TVShows},
	{"tv show", TVShows},
	{"tvshows", TVShows},
	{"shows", TVShows},
	{"show", TVShows},
	{"series", TVShows},
	{"movies", Movies},
	{"movie", Movies},
	{"films", Movies},
	{"film", Movies},
}

// minAliasSimilarity is the Jaro-Winkler score a typo must reach to match an alias.
const minAliasSimilarity = 0.85

// ParseCategory resolves free-form input ("tv", "Movies", "séries", "moveis") to a Category.
// Exact aliases win; otherwise the closest alias by Jaro-Winkler similarity is used
// when it clears minAliasSimilarity.
func ParseCategory(s string) (Category, error) {
	in := normalizeInput(s)
	if in == "" {
		return "", fmt.Errorf("empty category")
	}
	for _, a := range categoryAliases {
		if a.alias == in {
			return a.category, nil
		}
	}

	var (
		best      Category
		bestScore float32
	)
	for _, a := range categoryAliases {
		score := edlib.JaroWinklerSimilarity(in, a.alias)
		if score > bestScore {
			best, bestScore = a.category, score
		}
	}
	if bestScore >= minAliasSimilarity {
		return best, nil
	}
	return "", fmt.Errorf("unknown category %q (want tv or movies)", s)
}

func normalizeInput(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(folded)
	return strings.Join(strings.Fields(folded), " ")
}
