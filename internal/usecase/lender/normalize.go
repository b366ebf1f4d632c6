package lender

import (
	"strconv"
	"strings"

	domain "loanflow-backend/internal/domain/lender"
)

// stateCodes maps spelled-out state names to USPS codes. Import sources are
// inconsistent; search criteria always arrive as codes, so stored coverage
// must be codes too or matching silently fails.
var stateCodes = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

var nationwideAliases = map[string]bool{
	"nationwide": true,
	"national":   true,
	"all states": true,
	"usa":        true,
	"us":         true,
}

// NormalizeStates turns a free-form coverage list into USPS codes plus the
// NATIONWIDE sentinel. Unrecognized entries are dropped.
func NormalizeStates(raw []string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(code string) {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	for _, entry := range raw {
		s := strings.ToLower(strings.TrimSpace(entry))
		if s == "" {
			continue
		}
		if nationwideAliases[s] {
			add(domain.Nationwide)
			continue
		}
		if code, ok := stateCodes[s]; ok {
			add(code)
			continue
		}
		if len(s) == 2 {
			add(strings.ToUpper(s))
		}
	}
	return out
}

var propertyTypeAliases = map[string]string{
	"multifamily":      "MULTIFAMILY",
	"multi-family":     "MULTIFAMILY",
	"multi family":     "MULTIFAMILY",
	"apartment":        "MULTIFAMILY",
	"apartments":       "MULTIFAMILY",
	"office":           "OFFICE",
	"retail":           "RETAIL",
	"industrial":       "INDUSTRIAL",
	"warehouse":        "INDUSTRIAL",
	"hotel":            "HOSPITALITY",
	"hospitality":      "HOSPITALITY",
	"self storage":     "SELF_STORAGE",
	"self-storage":     "SELF_STORAGE",
	"storage":          "SELF_STORAGE",
	"mixed use":        "MIXED_USE",
	"mixed-use":        "MIXED_USE",
	"land":             "LAND",
	"mobile home":      "MOBILE_HOME_PARK",
	"mobile home park": "MOBILE_HOME_PARK",
	"senior housing":   "SENIOR_HOUSING",
	"medical office":   "MEDICAL_OFFICE",
	"single family":    "SINGLE_FAMILY",
	"sfr":              "SINGLE_FAMILY",
}

// NormalizePropertyTypes canonicalizes free-form property type labels.
// Entries with no known alias are kept as upper snake case rather than
// dropped; an exotic type should still round-trip through import.
func NormalizePropertyTypes(raw []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, entry := range raw {
		s := strings.ToLower(strings.TrimSpace(entry))
		if s == "" {
			continue
		}
		canonical, ok := propertyTypeAliases[s]
		if !ok {
			canonical = strings.ToUpper(strings.ReplaceAll(s, " ", "_"))
		}
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out
}

// ParseLoanAmount reads human-formatted dollar amounts as they appear in
// lender sheets: "$1.5MM", "2M", "500k", "750,000". Returns nil when the
// field is blank or unparseable; a nil bound means unbounded.
func ParseLoanAmount(raw string) *float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "mm"):
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "mm")
	case strings.HasSuffix(s, "m"):
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "k"):
		multiplier = 1_000
		s = strings.TrimSuffix(s, "k")
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return nil
	}
	v := n * multiplier
	return &v
}
