package storage

import "strconv"

// MaxListCap is the upper bound on page size for list operations.
const MaxListCap int32 = 500

// ParseMaxResults parses a max_results query value, falling back to def when
// empty. Values are clamped to MaxListCap. Returns ErrInvalidMaxResults for
// non-numeric or non-positive values.
func ParseMaxResults(value string, def int32) (int32, error) {
	if value == "" {
		return def, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, ErrInvalidMaxResults
	}

	return min(int32(n), MaxListCap), nil
}
