package label

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/grouplabel/grouplabel/store"
)

// ParseJoinDuration parses admin-facing durations like "7d", "1d12h" or
// "90m". Units: d, h, m, s. The result is strictly positive.
func ParseJoinDuration(input string) (time.Duration, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return 0, store.NewValidationError("duration is empty")
	}

	var total time.Duration
	for len(s) > 0 {
		i := 0
		for i < len(s) && unicode.IsDigit(rune(s[i])) {
			i++
		}
		if i == 0 || i == len(s) {
			return 0, store.NewValidationError("invalid duration %q", input)
		}
		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return 0, store.NewValidationError("invalid duration %q", input)
		}
		switch s[i] {
		case 'd':
			total += time.Duration(n) * 24 * time.Hour
		case 'h':
			total += time.Duration(n) * time.Hour
		case 'm':
			total += time.Duration(n) * time.Minute
		case 's':
			total += time.Duration(n) * time.Second
		default:
			return 0, store.NewValidationError("invalid duration unit %q in %q", string(s[i]), input)
		}
		s = s[i+1:]
	}
	if total <= 0 {
		return 0, store.NewValidationError("duration must be positive")
	}
	return total, nil
}
