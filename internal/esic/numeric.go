package esic

import (
	"strconv"
	"strings"
)

// IsNumber reports whether token is a numeric value. Thousands separators are
// formatting only and are ignored; at most one decimal point is allowed.
func IsNumber(token string) bool {
	cleaned := strings.ReplaceAll(token, ",", "")
	if strings.Count(cleaned, ".") > 1 {
		return false
	}

	digits := strings.Replace(cleaned, ".", "", 1)
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}

	_, err := strconv.ParseFloat(cleaned, 64)
	return err == nil
}
