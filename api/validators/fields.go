package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	pkgerrors "github.com/craftcollective/craft-market/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Bounds limits a numeric value. Nil ends are unbounded; both ends are inclusive.
type Bounds struct {
	Min *float64
	Max *float64
}

// Min returns a lower-bounded range.
func Min(v float64) Bounds {
	return Bounds{Min: &v}
}

// Range returns a range bounded on both ends.
func Range(min, max float64) Bounds {
	return Bounds{Min: &min, Max: &max}
}

// IsNonEmptyString reports whether value is a string with non-whitespace content.
func IsNonEmptyString(value any) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) != ""
}

// NonEmptyString returns the trimmed string or a bad-input error naming field.
func NonEmptyString(value any, field string) (string, error) {
	if !IsNonEmptyString(value) {
		return "", pkgerrors.BadRequest(fmt.Sprintf("%s is required", field))
	}
	return strings.TrimSpace(value.(string)), nil
}

// Email returns the trimmed, lower-cased address when it has a local@domain.tld shape.
func Email(value any) (string, error) {
	trimmed, err := NonEmptyString(value, "Email")
	if err != nil {
		return "", err
	}
	if !emailPattern.MatchString(trimmed) {
		return "", pkgerrors.BadRequest("Email is invalid")
	}
	return strings.ToLower(trimmed), nil
}

// Number coerces value to a finite float64 within bounds.
func Number(value any, field string, bounds Bounds) (float64, error) {
	num, ok := toFloat(value)
	if !ok || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, pkgerrors.BadRequest(fmt.Sprintf("%s must be a number", field))
	}
	if bounds.Min != nil && num < *bounds.Min {
		return 0, pkgerrors.BadRequest(fmt.Sprintf("%s must be at least %s", field, formatFloat(*bounds.Min)))
	}
	if bounds.Max != nil && num > *bounds.Max {
		return 0, pkgerrors.BadRequest(fmt.Sprintf("%s must be at most %s", field, formatFloat(*bounds.Max)))
	}
	return num, nil
}

// Largest magnitude a JSON number can carry while every whole value stays exact.
const maxExactInteger = 1 << 53

// Integer is Number restricted to whole values that fit an int exactly.
func Integer(value any, field string, bounds Bounds) (int, error) {
	num, err := Number(value, field, bounds)
	if err != nil {
		return 0, err
	}
	if num != math.Trunc(num) {
		return 0, pkgerrors.BadRequest(fmt.Sprintf("%s must be a whole number", field))
	}
	if num > maxExactInteger {
		return 0, pkgerrors.BadRequest(fmt.Sprintf("%s must be at most %d", field, maxExactInteger))
	}
	if num < -maxExactInteger {
		return 0, pkgerrors.BadRequest(fmt.Sprintf("%s must be at least %d", field, -maxExactInteger))
	}
	return int(num), nil
}

// IsInteger reports whether value is a JSON number with no fractional part.
func IsInteger(value any) bool {
	switch v := value.(type) {
	case float64:
		return !math.IsInf(v, 0) && v == math.Trunc(v)
	case int:
		return true
	case int64:
		return true
	case json.Number:
		_, err := v.Int64()
		return err == nil
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		return f, err == nil
	}
	return 0, false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
