// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"errors"
	"testing"

	"github.com/pdiddy/noteforge/pkg/types"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"watch URL", "https://www.youtube.com/watch?v=jNQXAC9IVRw", "jNQXAC9IVRw", false},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"embed URL", "https://www.youtube.com/embed/9bZkp7q19f0", "9bZkp7q19f0", false},
		{"shorts URL", "https://www.youtube.com/shorts/abcdefghijk", "abcdefghijk", false},
		{"watch URL with extra params", "https://www.youtube.com/watch?v=jNQXAC9IVRw&t=42s", "jNQXAC9IVRw", false},
		{"bare ID", "jNQXAC9IVRw", "jNQXAC9IVRw", false},
		{"whitespace around URL", "  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ", false},
		{"not a video URL", "https://example.com/watch", "", true},
		{"ID too short", "abc123", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("err = %v, want ErrInvalidURL", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// fakeFetcher maps a language key to a canned transcript or error. The key
// is the first requested language, or "" for the provider default.
type fakeFetcher struct {
	byLang map[string]string
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) FetchText(videoID string, languages []string) (string, error) {
	key := ""
	if len(languages) > 0 {
		key = languages[0]
	}
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.byLang[key], nil
}

func TestFetch_FirstLanguageWins(t *testing.T) {
	f := &fakeFetcher{byLang: map[string]string{"en": "hello world"}}
	got, err := Fetch(f, "jNQXAC9IVRw", types.TranscriptConfig{Languages: []string{"en", "de"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
	if len(f.calls) != 1 || f.calls[0] != "en" {
		t.Errorf("calls = %v, want [en]", f.calls)
	}
}

func TestFetch_FallsThroughLanguages(t *testing.T) {
	f := &fakeFetcher{
		byLang: map[string]string{"en-GB": "  cheers  "},
		errs:   map[string]error{"en": errors.New("no transcript in en")},
	}
	got, err := Fetch(f, "jNQXAC9IVRw", types.TranscriptConfig{Languages: []string{"en", "en-US", "en-GB"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "cheers" {
		t.Errorf("got %q, want trimmed transcript", got)
	}
	if len(f.calls) != 3 {
		t.Errorf("calls = %v, want all three languages tried", f.calls)
	}
}

func TestFetch_DefaultLanguageFallback(t *testing.T) {
	f := &fakeFetcher{
		byLang: map[string]string{"": "default language text"},
		errs: map[string]error{
			"en":    errors.New("nope"),
			"en-US": errors.New("nope"),
			"en-GB": errors.New("nope"),
		},
	}
	got, err := Fetch(f, "jNQXAC9IVRw", types.TranscriptConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "default language text" {
		t.Errorf("got %q", got)
	}
}

func TestFetch_Classification(t *testing.T) {
	tests := []struct {
		name     string
		provider error
		want     error
	}{
		{"video unavailable", errors.New("video is unavailable"), ErrVideoNotFound},
		{"video not found", errors.New("404 not found"), ErrVideoNotFound},
		{"subtitles disabled", errors.New("subtitles are disabled for this video"), ErrNoTranscript},
		{"other failure", errors.New("429 too many requests"), ErrLanguageUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{errs: map[string]error{
				"en": tt.provider, "en-US": tt.provider, "en-GB": tt.provider, "": tt.provider,
			}}
			_, err := Fetch(f, "jNQXAC9IVRw", types.TranscriptConfig{})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetch_EmptyTranscriptIsNoTranscript(t *testing.T) {
	f := &fakeFetcher{} // every call succeeds with ""
	_, err := Fetch(f, "jNQXAC9IVRw", types.TranscriptConfig{})
	if !errors.Is(err, ErrNoTranscript) {
		t.Errorf("err = %v, want ErrNoTranscript", err)
	}
}

func TestJoinSegments(t *testing.T) {
	segs := []types.Segment{
		{Text: "Welcome to the tutorial.", Start: 0, Duration: 2.4},
		{Text: "  ", Start: 2.4, Duration: 0.5},
		{Text: "Today we cover functions.", Start: 2.9, Duration: 3.1},
	}
	got := JoinSegments(segs)
	want := "Welcome to the tutorial. Today we cover functions."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
