package download

import "testing"

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantOk   bool
	}{
		{"integer", "10%", 10, true},
		{"fraction truncated", "55.3%", 55, true},
		{"high fraction truncated", "99.9%", 99, true},
		{"padded", "  7.0%", 7, true},
		{"full", "100.0%", 100, true},
		{"no percent sign", "42", 42, true},
		{"ansi colored", "\x1b[0;94m 12.5%\x1b[0m", 12, true},
		{"above range clamped", "104.2%", 100, true},
		{"below range clamped", "-3%", 0, true},
		{"unknown", "N/A", 0, false},
		{"empty", "", 0, false},
		{"only sign", "%", 0, false},
		{"nan", "NaN%", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePercent(tt.input)
			if ok != tt.wantOk {
				t.Fatalf("ParsePercent(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if got != tt.expected {
				t.Errorf("ParsePercent(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
