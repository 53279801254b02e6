package validation

import (
	"math"
	"regexp"
	"strings"
)

var iconCodeRegex = regexp.MustCompile(`^[0-9]{2}[dn]$`)

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// IsValidLatitude reports whether lat is a finite value in [-90, 90]
func IsValidLatitude(lat float64) bool {
	return isFinite(lat) && lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lon is a finite value in [-180, 180]
func IsValidLongitude(lon float64) bool {
	return isFinite(lon) && lon >= -180 && lon <= 180
}

// IsValidIconCode validates OpenWeatherMap icon codes such as "01d" or "10n"
func IsValidIconCode(code string) bool {
	return iconCodeRegex.MatchString(code)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
