package restarea

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Markers identifying fuel stations in the location listing.
const (
	fuelStationMarker = "주유소"
	lpgMarker         = "LPG"
	restAreaSuffix    = "휴게소"
)

var (
	directionPattern   = regexp.MustCompile(`\(([^)]+)\)`)
	parenthesesPattern = regexp.MustCompile(`\([^)]*\)`)
	leadingIntPattern  = regexp.MustCompile(`^[+-]?\d+`)
	leadingNumPattern  = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// ParseDirection returns the text inside the first pair of parentheses of
// a raw unit name, e.g. "서울만남(부산)휴게소" yields "부산".
func ParseDirection(unitName string) string {
	m := directionPattern.FindStringSubmatch(unitName)
	if m == nil {
		return ""
	}
	return m[1]
}

// CleanName strips the parenthesized direction and the rest-area or
// fuel-station suffix from a raw unit name.
func CleanName(unitName string) string {
	name := unitName
	if loc := parenthesesPattern.FindStringIndex(name); loc != nil {
		name = name[:loc[0]] + name[loc[1]:]
	}
	name = strings.TrimSuffix(name, restAreaSuffix)
	name = strings.TrimSuffix(name, fuelStationMarker)
	return strings.TrimSpace(name)
}

// IsFuelStation reports whether a raw unit name denotes a fuel or LPG
// station rather than a rest area.
func IsFuelStation(unitName string) bool {
	return strings.Contains(unitName, fuelStationMarker) || strings.Contains(unitName, lpgMarker)
}

// SelectBestFood picks the representative menu item: the first flagged
// best, else the first recommended, else the first listed.
func SelectBestFood(foods []Food) string {
	for _, f := range foods {
		if f.IsBest {
			return f.Name
		}
	}
	for _, f := range foods {
		if f.IsRecommend {
			return f.Name
		}
	}
	if len(foods) > 0 {
		return foods[0].Name
	}
	return ""
}

// OperatingHours takes the hours of the main lounge amenity, falling back
// to the first amenity. Missing values default to an all-day window.
func OperatingHours(amenities []Amenity) (openTime, closeTime string) {
	openTime, closeTime = defaultOpenTime, defaultCloseTime
	if len(amenities) == 0 {
		return openTime, closeTime
	}
	main := amenities[0]
	for _, a := range amenities {
		if a.Name == LabelMainLounge {
			main = a
			break
		}
	}
	if main.OpenTime != "" {
		openTime = main.OpenTime
	}
	if main.CloseTime != "" {
		closeTime = main.CloseTime
	}
	return openTime, closeTime
}

// FirstNonEmpty returns the first non-empty candidate.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// ParseLeadingInt parses the integer prefix of s ("5,000원" yields 5).
// Anything unparseable yields 0.
func ParseLeadingInt(s string) int {
	m := leadingIntPattern.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// ParseLeadingFloat parses the decimal prefix of s. Anything unparseable
// yields 0.
func ParseLeadingFloat(s string) float64 {
	m := leadingNumPattern.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}
