package stats

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		position string
		want     string
	}{
		{"TOP", "Top"},
		{"JUNGLE", "Jungle"},
		{"MIDDLE", "Mid"},
		{"BOTTOM", "ADC"},
		{"UTILITY", "Support"},
		{"", ""},
		{"Invalid", "Invalid"},
		{"bottom", "bottom"},
	}
	for _, tt := range tests {
		if got := NormalizeRole(tt.position); got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.position, got, tt.want)
		}
	}
}
