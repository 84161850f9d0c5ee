package ytdlp

import "testing"

func TestPickSubtitle(t *testing.T) {
	tests := []struct {
		name      string
		paths     []string
		preferred string
		want      string
	}{
		{
			name:      "exact language wins",
			paths:     []string{"/tmp/x/abc.de.vtt", "/tmp/x/abc.en.vtt"},
			preferred: "/tmp/x/abc.en.vtt",
			want:      "/tmp/x/abc.en.vtt",
		},
		{
			name:      "falls back to first sorted",
			paths:     []string{"/tmp/x/abc.fr.vtt", "/tmp/x/abc.de.vtt"},
			preferred: "/tmp/x/abc.en.vtt",
			want:      "/tmp/x/abc.de.vtt",
		},
		{
			name:      "nothing written",
			paths:     nil,
			preferred: "/tmp/x/abc.en.vtt",
			want:      "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickSubtitle(tt.paths, tt.preferred); got != tt.want {
				t.Fatalf("pickSubtitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubtitleLanguage(t *testing.T) {
	tests := map[string]string{
		"/tmp/x/dQw4w9WgXcQ.en.vtt":    "en",
		"/tmp/x/dQw4w9WgXcQ.en-US.srt": "en-US",
		"/tmp/x/dQw4w9WgXcQ.vtt":       "",
	}
	for path, want := range tests {
		if got := subtitleLanguage(path); got != want {
			t.Fatalf("subtitleLanguage(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	a := New("", "", "", "")
	if a.bin != "yt-dlp" || a.lang != "en" || a.subFormat != "vtt" {
		t.Fatalf("unexpected defaults: %+v", a)
	}
	if a.tmpDir == "" {
		t.Fatalf("expected temp dir default")
	}
	if New("", "", "srt", "").subFormat != "srt" {
		t.Fatalf("expected srt format to stick")
	}
}
