package errors

import (
	"testing"
)

func TestValidateReportID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"valid v4", "f47ac10b-58cc-4372-a567-0e02b2c3d479", false},

		{"empty", "", true},
		{"garbage", "not-a-uuid", true},
		{"path traversal", "../../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReportID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReportID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateReportID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateTokens(t *testing.T) {
	tests := []struct {
		name    string
		input   []int
		wantErr bool
	}{
		{"valid", []int{5, 1, 2, 5}, false},
		{"short is not an error", []int{2}, false},
		{"empty is not an error", nil, false},
		{"at city limit", []int{MaxNodes, 1, 1, 2}, false},
		{"at highway limit", []int{5, MaxHighways, 1, 2}, false},
		{"too many cities", []int{MaxNodes + 1, 1, 1, 2}, true},
		{"billion cities", []int{1_000_000_000, 1, 1, 2}, true},
		{"too many highways", []int{5, MaxHighways + 1, 1, 2}, true},

		{"negative", []int{5, 1, -2, 5}, true},
		{"too large", make([]int, MaxTokens+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTokens(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTokens() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"svg", false},
		{"SVG", false},
		{"dot", false},
		{"json", false},

		{"", true},
		{"png", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("ValidateFormat(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}
