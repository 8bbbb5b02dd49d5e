package logging

import "testing"

func TestIsValidLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"CRITICAL", true},
		{"ERROR", true},
		{"WARNING", true},
		{"INFO", true},
		{"DEBUG", true},
		{"WARN", false},  // abbreviated form is not accepted
		{"info", false},  // levels are case-sensitive
		{"TRACE", false}, // not part of the canonical set
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidLogLevel(tt.level); got != tt.want {
				t.Errorf("IsValidLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	if err := ValidateLogLevel("DEBUG"); err != nil {
		t.Errorf("ValidateLogLevel(DEBUG) returned error: %v", err)
	}

	if err := ValidateLogLevel("VERBOSE"); err == nil {
		t.Error("ValidateLogLevel(VERBOSE) should have returned an error")
	}
}
