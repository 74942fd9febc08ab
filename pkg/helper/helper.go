package helper

import (
	"math"
	"strconv"
	"strings"
)

// ParseBool parse string value, false if not valid
func ParseBool(str string) bool {
	b, _ := strconv.ParseBool(str)
	return b
}

// ParseInt parse string value with default when empty or invalid
func ParseInt(str string, defaultValue int) int {
	i, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return defaultValue
	}
	return i
}

// StringInSlice check str is exist in list
func StringInSlice(str string, list []string) bool {
	for _, s := range list {
		if s == str {
			return true
		}
	}
	return false
}

// SplitTrim split string by separator and trim every item, empty item removed
func SplitTrim(str, sep string) (result []string) {
	for _, s := range strings.Split(str, sep) {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// NormalizePaging clamp page and limit into valid range
func NormalizePaging(page, limit int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// offset (page-1)*limit must stay inside int32
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// ToBoolPtr helper
func ToBoolPtr(b bool) *bool {
	return &b
}
