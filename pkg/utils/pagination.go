package utils

import "strconv"

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	MaxPage        = 1_000_000
)

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// CalculateOffset clamps page to MaxPage and perPage to MaxPerPage so the
// product always fits in an int. Pages past the last row yield an empty list.
func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return (page - 1) * perPage
}

// ParseInt converts a query value to a positive int, falling back to defaultValue.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}

// ParseID parses a positive integer path parameter.
func ParseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
