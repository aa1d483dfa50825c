package common

import (
	"strings"

	"boscoin.io/ballot/lib/errors"
)

// ParseBoolQueryString accepts 'true', 'yes', '1' and 'false', 'no', '0'
// in any case; anything else is `errors.InvalidQueryString`.
func ParseBoolQueryString(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	default:
		return false, errors.InvalidQueryString
	}
}
