package location

import (
	"strings"
	"unicode"

	"gh-talent-scout/internal/models"
)

// Resolver parses free-text locations into a city/state/country hierarchy
// and compares hierarchies at the most specific shared level.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Parse decomposes a free-text location. Best effort: unknown input yields
// an empty hierarchy, never an error.
func (r *Resolver) Parse(text string) models.LocationHierarchy {
	var h models.LocationHierarchy

	text = strings.TrimSpace(text)
	if text == "" {
		return h
	}

	for _, part := range strings.Split(text, ",") {
		token := normalize(part)
		if token == "" || nonLocations[token] {
			continue
		}

		if alias, ok := cityAliases[token]; ok {
			token = alias
		}

		if country, ok := countryAliases[token]; ok {
			if h.Country == "" {
				h.Country = country
			}
			continue
		}

		if country, ok := stateCountry[token]; ok {
			// a token can be both a city and a state ("New York",
			// "Berlin"); prefer the city reading when the slot is free
			if _, isCity := cityState[token]; isCity && h.City == "" {
				h.City = title(token)
			}
			if h.State == "" {
				h.State = title(token)
			}
			if h.Country == "" {
				h.Country = country
			}
			continue
		}

		if state, ok := cityState[token]; ok {
			if h.City == "" {
				h.City = title(token)
			}
			if h.State == "" {
				h.State = title(state)
			}
			if h.Country == "" {
				h.Country = stateCountry[state]
			}
			continue
		}

		// unknown token: keep it as a free-text city so fuzzy matching
		// still has something to work with
		if h.City == "" && isWordToken(token) {
			h.City = title(token)
		}
	}

	return h
}

// Match compares two hierarchies and returns the strongest shared level
// with a confidence score. City matches are strongest; confidence decays
// with the level and with fuzzy (non-exact) token similarity.
func (r *Resolver) Match(a, b models.LocationHierarchy) (string, float64) {
	if a.IsEmpty() || b.IsEmpty() {
		return models.MatchNone, 0
	}

	// a country conflict rules out any match below it
	if a.Country != "" && b.Country != "" && normalize(a.Country) != normalize(b.Country) {
		return models.MatchNone, 0
	}

	if a.City != "" && b.City != "" {
		if sim := similarity(normalize(a.City), normalize(b.City)); sim >= 0.85 {
			return models.MatchCity, 0.9 + 0.1*sim
		}
	}

	if a.State != "" && b.State != "" {
		if sim := similarity(normalize(a.State), normalize(b.State)); sim >= 0.85 {
			return models.MatchState, 0.6 + 0.1*sim
		}
	}

	if a.Country != "" && b.Country != "" {
		return models.MatchCountry, 0.4
	}

	return models.MatchNone, 0
}

// CitiesForState returns representative cities for a state, most relevant
// first. Empty for unknown states.
func (r *Resolver) CitiesForState(state string) []string {
	cities, ok := stateCities[normalize(state)]
	if !ok {
		return nil
	}
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// similarity is a cheap 0..1 string likeness: exact, then prefix, then
// substring, discounted by the length gap.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	ratio := float64(len(shorter)) / float64(len(longer))

	if strings.HasPrefix(longer, shorter) {
		return 0.9 * ratio
	}
	if strings.Contains(longer, shorter) {
		return 0.75 * ratio
	}

	// common prefix length as a last resort
	common := 0
	for common < len(shorter) && shorter[common] == longer[common] {
		common++
	}
	return float64(common) / float64(len(longer))
}

func normalize(s string) string {
	s = strings.ToLower(s)
	repl := []struct{ from, to string }{
		{".", " "}, {"(", " "}, {")", " "}, {"-", " "},
	}
	for _, r := range repl {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return strings.Join(strings.Fields(s), " ")
}

func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func isWordToken(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return s != ""
}
