package profile

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Name
		codec string
	}{
		{"series", Series, ""},
		{"Series", Series, ""},
		{" movies ", Movies, "AC-3"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if p.Name != tt.want {
				t.Fatalf("Parse(%q) = %s, want %s", tt.input, p.Name, tt.want)
			}
			if p.RequiredAudioCodec != tt.codec {
				t.Fatalf("required codec = %q, want %q", p.RequiredAudioCodec, tt.codec)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("anime"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestEpisodeTitlesOnlyForSeries(t *testing.T) {
	if !MustParse("series").EpisodeTitles {
		t.Fatal("series should use episode titles")
	}
	if MustParse("movies").EpisodeTitles {
		t.Fatal("movies should not use episode titles")
	}
}
