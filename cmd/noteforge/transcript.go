// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/noteforge/internal/transcript"
	"github.com/pdiddy/noteforge/pkg/types"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript [video-url-or-id]",
	Short: "Fetch a YouTube video transcript as plain text",
	Long: `Transcript extracts the video ID from a watch, embed, youtu.be, or
Shorts URL (bare IDs work too) and fetches the transcript, trying the
preferred languages in order before falling back to the provider default.

With --segments-file, a JSON array of timed segments is read from disk and
joined instead of contacting YouTube.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranscript,
}

func runTranscript(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	segmentsFile, _ := cmd.Flags().GetString("segments-file")
	if segmentsFile != "" {
		data, err := os.ReadFile(segmentsFile)
		if err != nil {
			return fmt.Errorf("reading segments file: %w", err)
		}
		var segments []types.Segment
		if err := json.Unmarshal(data, &segments); err != nil {
			return fmt.Errorf("parsing segments file: %w", err)
		}
		return writeTranscript(transcript.JoinSegments(segments), out)
	}

	if len(args) == 0 {
		return fmt.Errorf("video URL or ID required (or --segments-file)")
	}

	videoID, err := transcript.ExtractVideoID(args[0])
	if err != nil {
		return err
	}

	text, err := transcript.Fetch(transcript.NewYouTubeFetcher(), videoID, transcriptConfig(cmd))
	if err != nil {
		return err
	}
	return writeTranscript(text, out)
}

// transcriptConfig resolves transcript settings from the --languages flag,
// then the languages config key. An empty Languages list lets Fetch apply
// the built-in default order.
func transcriptConfig(cmd *cobra.Command) types.TranscriptConfig {
	if langs, _ := cmd.Flags().GetString("languages"); langs != "" {
		return types.TranscriptConfig{Languages: splitLanguages(langs)}
	}
	return types.TranscriptConfig{Languages: viper.GetStringSlice("languages")}
}

func splitLanguages(langs string) []string {
	var out []string
	for _, l := range strings.Split(langs, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func writeTranscript(text, out string) error {
	if out == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Transcript written to %s (%d characters)\n", out, len(text))
	return nil
}

func init() {
	transcriptCmd.Flags().String("languages", "", "comma-separated preferred language codes (default: en,en-US,en-GB)")
	transcriptCmd.Flags().String("segments-file", "", "JSON file of timed segments to join instead of fetching")
	transcriptCmd.Flags().String("out", "", "write the transcript to a file instead of stdout")

	rootCmd.AddCommand(transcriptCmd)
}
