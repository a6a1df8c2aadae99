package errors

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Size limits for one island description. The planarity check allocates
// per city and compares every pair of pieces, so both counts are capped.
const (
	MaxNodes    = 1 << 14
	MaxHighways = 1 << 10
	MaxTokens   = 2 + 2*MaxHighways
)

// RenderFormats lists the output formats accepted by the render command.
var RenderFormats = []string{"svg", "dot", "json"}

// ValidateReportID checks that id is a report identifier (a UUID).
func ValidateReportID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "report id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid report id %q", id)
	}
	return nil
}

// ValidateTokens rejects descriptions that are oversized, that declare more
// than MaxNodes cities or MaxHighways highways, or that contain negative
// values. Empty input and range or arity problems are not errors here; the
// network builder records those as malformed input.
func ValidateTokens(tokens []int) error {
	if len(tokens) > MaxTokens {
		return New(ErrCodeInvalidInput, "input too large (max %d numbers)", MaxTokens)
	}
	if len(tokens) > 0 && tokens[0] > MaxNodes {
		return New(ErrCodeInvalidInput, "city count %d exceeds the limit of %d", tokens[0], MaxNodes)
	}
	if len(tokens) > 1 && tokens[1] > MaxHighways {
		return New(ErrCodeInvalidInput, "highway count %d exceeds the limit of %d", tokens[1], MaxHighways)
	}
	for i, v := range tokens {
		if v < 0 {
			return New(ErrCodeInvalidInput, "value %d at position %d is negative", v, i)
		}
	}
	return nil
}

// ValidateFormat checks a render output format.
func ValidateFormat(format string) error {
	if !slices.Contains(RenderFormats, strings.ToLower(format)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (use %s)", format, strings.Join(RenderFormats, ", "))
	}
	return nil
}
