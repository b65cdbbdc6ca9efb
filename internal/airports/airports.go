package airports

import "strings"

// cityCodes maps common city names to the metro or airport code the travel
// sites accept.
var cityCodes = map[string]string{
	"NEW YORK":      "NYC",
	"LOS ANGELES":   "LAX",
	"CHICAGO":       "CHI",
	"MIAMI":         "MIA",
	"SAN FRANCISCO": "SFO",
	"SEATTLE":       "SEA",
	"BOSTON":        "BOS",
	"WASHINGTON":    "WAS",
	"ATLANTA":       "ATL",
	"DENVER":        "DEN",
	"DALLAS":        "DFW",
	"HOUSTON":       "HOU",
	"PHOENIX":       "PHX",
	"LAS VEGAS":     "LAS",
	"ORLANDO":       "MCO",
}

// Resolve turns a city name or airport code into the uppercase form used in
// requests. Unknown city names are passed through uppercased; the sources
// decide whether they can search on them.
func Resolve(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if code, ok := cityCodes[s]; ok {
		return code
	}
	return s
}

// IsCode reports whether s looks like a 3-letter IATA code.
func IsCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
