// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes turns transcripts into structured study notes through a
// chat-completion backend and persists them as timestamped Markdown files.
package notes

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/noteforge/pkg/types"
)

const defaultMaxRetries = 3

// Generate produces structured study notes from a raw transcript.
func Generate(ctx context.Context, backend Backend, transcript string, cfg types.NotesConfig) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", fmt.Errorf("empty transcript")
	}
	prompt, err := renderCreatePrompt(transcript)
	if err != nil {
		return "", err
	}
	out, err := callWithRetry(ctx, backend, prompt, cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("generating notes: %w", err)
	}
	return out, nil
}

// Enhance reworks generated notes with a table of contents, tables, and a
// quick-reference section.
func Enhance(ctx context.Context, backend Backend, content string, cfg types.NotesConfig) (string, error) {
	date := time.Now().UTC().Format("2006-01-02")
	prompt, err := renderEnhancePrompt(content, date)
	if err != nil {
		return "", err
	}
	out, err := callWithRetry(ctx, backend, prompt, cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("enhancing notes: %w", err)
	}
	return out, nil
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// callWithRetry calls the backend with exponential backoff between attempts.
func callWithRetry(ctx context.Context, backend Backend, prompt string, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		out, err := backend.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// Title returns the first top-level heading of notes content, or a
// fallback when there is none.
func Title(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if rest, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return "Untitled notes"
}

// TimestampID formats t as the identifier shared by artifact filenames
// and history records.
func TimestampID(t time.Time) string {
	return t.Format("20060102_150405")
}

// Save writes notes to dir as youtube_notes_<id>.md with YAML frontmatter
// recording provenance. It returns the file path.
func Save(dir, id, videoID, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating notes directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("youtube_notes_%s.md", id))

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %q\n", id)
	if videoID != "" {
		fmt.Fprintf(&b, "video_id: %q\n", videoID)
	}
	fmt.Fprintf(&b, "created_at: %q\n", time.Now().UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing notes file: %w", err)
	}
	return path, nil
}
