// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"fmt"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_formatters"
)

// ytClient is the slice of the transcript API client this package uses.
type ytClient interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// YouTubeFetcher implements Fetcher against the YouTube transcript API,
// formatting segments as plain text without timestamps.
type YouTubeFetcher struct {
	client ytClient
}

// NewYouTubeFetcher builds the production fetcher.
func NewYouTubeFetcher() *YouTubeFetcher {
	formatter := yt_transcript_formatters.NewTextFormatter(
		yt_transcript_formatters.WithTimestamps(false),
		yt_transcript_formatters.WithLanguageCode(false),
	)
	return &YouTubeFetcher{
		client: yt_transcript.NewClient(yt_transcript.WithFormatter(formatter)),
	}
}

// FetchText retrieves the transcript for videoID in the first available of
// the given languages, or the provider default when languages is empty.
func (y *YouTubeFetcher) FetchText(videoID string, languages []string) (string, error) {
	text, err := y.client.GetFormattedTranscripts(videoID, languages, true)
	if err != nil {
		return "", fmt.Errorf("fetching transcript for %s: %w", videoID, err)
	}
	return text, nil
}
