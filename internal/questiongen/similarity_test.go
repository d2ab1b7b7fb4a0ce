package questiongen

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "abc", 1},
		{"abc", "xyz", 0},
		{"abcdefghij", "abcdefgxyz", 0.7},
		{"Würfel", "Würfel", 1},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsUnique_ThresholdIsExclusive(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		previous []string
		want     bool
	}{
		{"no previous", "Was ist OLAP?", nil, true},
		{"identical", "Was ist OLAP?", []string{"Was ist OLAP?"}, false},
		{"disjoint", "abc", []string{"xyz"}, true},
		{"exactly at threshold", "abcdefghij", []string{"abcdefgxyz"}, true},
		{"just above threshold", "abcdefghij", []string{"abcdefghyz"}, false},
		{"topic prefixes ignored", "Thema: OLAP\n\nWas ist OLAP?", []string{"Topic: Cubes\n\nWas ist OLAP?"}, false},
		{"any match rejects", "Was ist OLAP?", []string{"ganz anders", "Was ist OLAP?"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnique(tt.text, tt.previous, 0.7); got != tt.want {
				t.Errorf("IsUnique = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStripTopicPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Thema: OLAP\n\nWas ist OLAP?", "Was ist OLAP?"},
		{"Topic: ETL\nWhat is ETL?", "What is ETL?"},
		{"Thema: OLAP", "OLAP"},
		{"Was ist OLAP?", "Was ist OLAP?"},
		{"  thema: x\n\ny  ", "y"},
	}
	for _, tt := range tests {
		if got := StripTopicPrefix(tt.in); got != tt.want {
			t.Errorf("StripTopicPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
