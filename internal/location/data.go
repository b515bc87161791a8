package location

// Static gazetteer covering the markets the sourcing pipeline targets.
// Keys are normalized (lowercase, collapsed whitespace).

var countryAliases = map[string]string{
	"india":          "India",
	"in":             "India",
	"usa":            "United States",
	"us":             "United States",
	"u s":            "United States",
	"united states":  "United States",
	"america":        "United States",
	"uk":             "United Kingdom",
	"united kingdom": "United Kingdom",
	"england":        "United Kingdom",
	"germany":        "Germany",
	"deutschland":    "Germany",
	"canada":         "Canada",
	"australia":      "Australia",
	"netherlands":    "Netherlands",
	"france":         "France",
	"brazil":         "Brazil",
	"japan":          "Japan",
	"singapore":      "Singapore",
	"poland":         "Poland",
	"spain":          "Spain",
}

var cityAliases = map[string]string{
	"bangalore": "bengaluru",
	"bombay":    "mumbai",
	"madras":    "chennai",
	"calcutta":  "kolkata",
	"nyc":       "new york",
	"sf":        "san francisco",
	"la":        "los angeles",
}

// stateCountry maps a normalized state/region name to its country.
var stateCountry = map[string]string{
	"tamil nadu":       "India",
	"karnataka":        "India",
	"maharashtra":      "India",
	"telangana":        "India",
	"kerala":           "India",
	"west bengal":      "India",
	"delhi":            "India",
	"california":       "United States",
	"texas":            "United States",
	"new york":         "United States",
	"washington":       "United States",
	"massachusetts":    "United States",
	"colorado":         "United States",
	"ontario":          "Canada",
	"british columbia": "Canada",
	"bavaria":          "Germany",
	"berlin":           "Germany",
	"greater london":   "United Kingdom",
}

// stateCities lists representative cities per state, most relevant first.
// Drives multi-city broadening at the state level.
var stateCities = map[string][]string{
	"tamil nadu":       {"Chennai", "Coimbatore", "Madurai", "Tiruchirappalli", "Salem"},
	"karnataka":        {"Bengaluru", "Mysuru", "Mangaluru", "Hubli"},
	"maharashtra":      {"Mumbai", "Pune", "Nagpur", "Nashik"},
	"telangana":        {"Hyderabad", "Warangal"},
	"kerala":           {"Kochi", "Thiruvananthapuram", "Kozhikode"},
	"west bengal":      {"Kolkata", "Durgapur"},
	"delhi":            {"New Delhi", "Noida", "Gurugram"},
	"california":       {"San Francisco", "Los Angeles", "San Jose", "San Diego", "Sacramento"},
	"texas":            {"Austin", "Dallas", "Houston", "San Antonio"},
	"new york":         {"New York", "Buffalo", "Rochester"},
	"washington":       {"Seattle", "Bellevue", "Spokane"},
	"massachusetts":    {"Boston", "Cambridge", "Worcester"},
	"colorado":         {"Denver", "Boulder", "Colorado Springs"},
	"ontario":          {"Toronto", "Ottawa", "Waterloo"},
	"british columbia": {"Vancouver", "Victoria"},
	"bavaria":          {"Munich", "Nuremberg"},
	"berlin":           {"Berlin"},
	"greater london":   {"London"},
}

// cityState maps a normalized city to its state. Built once from
// stateCities at init so the two tables cannot drift.
var cityState = func() map[string]string {
	out := make(map[string]string)
	for state, cities := range stateCities {
		for _, city := range cities {
			out[normalize(city)] = state
		}
	}
	return out
}()

// nonLocations are tokens that look like locations in profiles but carry no
// geographic information.
var nonLocations = map[string]bool{
	"remote":    true,
	"worldwide": true,
	"earth":     true,
	"internet":  true,
	"anywhere":  true,
	"home":      true,
	"n/a":       true,
}
