package govdata

import "strings"

var cityStates = map[string]string{
	"bangalore": "Karnataka", "bengaluru": "Karnataka",
	"mumbai": "Maharashtra", "pune": "Maharashtra", "nagpur": "Maharashtra",
	"delhi": "Delhi", "new delhi": "Delhi",
	"chennai": "Tamil Nadu", "coimbatore": "Tamil Nadu",
	"hyderabad": "Telangana", "kolkata": "West Bengal",
	"ahmedabad": "Gujarat", "surat": "Gujarat",
	"jaipur": "Rajasthan", "lucknow": "Uttar Pradesh", "kanpur": "Uttar Pradesh",
	"indore": "Madhya Pradesh", "bhopal": "Madhya Pradesh",
}

// airAliases are alternate spellings the air-quality feed files stations under.
var airAliases = map[string]string{
	"bangalore": "Bengaluru",
	"gurgaon":   "Gurugram",
	"mysore":    "Mysuru",
}

// StateForCity returns the state for a known city, or "" if unknown.
func StateForCity(city string) string {
	return cityStates[strings.ToLower(strings.TrimSpace(city))]
}

func airAlias(city string) (string, bool) {
	alias, ok := airAliases[strings.ToLower(strings.TrimSpace(city))]
	return alias, ok
}
