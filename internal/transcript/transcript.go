// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transcript retrieves YouTube video transcripts with language
// fallback and a typed failure taxonomy so callers can degrade gracefully.
package transcript

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/noteforge/pkg/types"
)

// Sentinel errors for transcript retrieval. Callers match with errors.Is
// and report the failure; none of these is fatal to the pipeline.
var (
	// ErrInvalidURL means no video ID could be extracted from the input.
	ErrInvalidURL = errors.New("could not extract video ID")

	// ErrVideoNotFound means the provider does not know the video.
	ErrVideoNotFound = errors.New("video not found")

	// ErrNoTranscript means the video has no retrievable transcript.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrLanguageUnavailable means none of the preferred languages nor the
	// provider default produced a transcript.
	ErrLanguageUnavailable = errors.New("transcript language not available")
)

// videoIDPatterns match the supported YouTube URL forms: watch, embed,
// short link, and Shorts. IDs are eleven characters of [0-9A-Za-z_-].
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/v/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`shorts/([0-9A-Za-z_-]{11})`),
}

// bareIDPattern matches a raw video ID passed without a URL.
var bareIDPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// ExtractVideoID pulls the video ID out of a YouTube URL, accepting a bare
// eleven-character ID as-is.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if bareIDPattern.MatchString(input) {
		return input, nil
	}
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w from %q", ErrInvalidURL, input)
}

// Fetcher retrieves a plain-text transcript for a video. languages is the
// preference order; empty means the provider default. Implemented by the
// YouTube client and by test fakes.
type Fetcher interface {
	FetchText(videoID string, languages []string) (string, error)
}

// Fetch tries each of cfg's preferred languages in order, then the provider
// default. The first non-empty transcript wins. When every attempt fails the
// last provider error is classified into the package's sentinel taxonomy.
func Fetch(f Fetcher, videoID string, cfg types.TranscriptConfig) (string, error) {
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = types.DefaultLanguages
	}

	var lastErr error
	for _, lang := range languages {
		text, err := f.FetchText(videoID, []string{lang})
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), nil
		}
		if err != nil {
			lastErr = err
		}
	}

	// None of the preferred languages worked; take whatever the provider
	// has in its default language.
	text, err := f.FetchText(videoID, nil)
	if err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}
	if err != nil {
		lastErr = err
	}

	return "", classify(videoID, lastErr)
}

// classify wraps a provider error with the matching sentinel. Providers
// report failures as plain error strings, so this is substring matching,
// ending in ErrLanguageUnavailable when nothing else fits.
func classify(videoID string, err error) error {
	if err == nil {
		return fmt.Errorf("video %s: %w", videoID, ErrNoTranscript)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unavailable"), strings.Contains(msg, "not found"):
		return fmt.Errorf("video %s: %w: %v", videoID, ErrVideoNotFound, err)
	case strings.Contains(msg, "disabled"), strings.Contains(msg, "no transcript"):
		return fmt.Errorf("video %s: %w: %v", videoID, ErrNoTranscript, err)
	default:
		return fmt.Errorf("video %s: %w: %v", videoID, ErrLanguageUnavailable, err)
	}
}

// JoinSegments flattens timed segments into one text blob, the shape the
// note generator consumes.
func JoinSegments(segments []types.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
