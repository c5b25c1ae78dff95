// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/noteforge/internal/notes"
	"github.com/pdiddy/noteforge/pkg/types"
)

var notesCmd = &cobra.Command{
	Use:   "notes [transcript-file]",
	Short: "Generate structured study notes from a transcript",
	Long: `Notes reads a transcript from a file (or stdin when the argument is "-"
or omitted), generates structured study notes through the configured
language model, enhances them, and saves the result as a timestamped
Markdown file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNotes,
}

func runNotes(cmd *cobra.Command, args []string) error {
	text, err := readTranscriptArg(args)
	if err != nil {
		return err
	}

	cfg := notesConfig(cmd)
	backend, err := notesBackend(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	fmt.Fprintln(os.Stderr, "Generating notes...")
	content, err := notes.Generate(ctx, backend, text, cfg)
	if err != nil {
		return err
	}

	if noEnhance, _ := cmd.Flags().GetBool("no-enhance"); !noEnhance {
		fmt.Fprintln(os.Stderr, "Enhancing notes...")
		content, err = notes.Enhance(ctx, backend, content, cfg)
		if err != nil {
			return err
		}
	}

	id := notes.TimestampID(time.Now())
	path, err := notes.Save(cfg.NotesDir, id, "", content)
	if err != nil {
		return err
	}
	fmt.Printf("Notes saved to %s\n", path)
	return nil
}

// readTranscriptArg reads the transcript from the file argument, or stdin
// for "-" or no argument.
func readTranscriptArg(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading transcript from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading transcript file: %w", err)
	}
	return string(data), nil
}

// notesConfig resolves notes settings from flags and config.
func notesConfig(cmd *cobra.Command) types.NotesConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}
	notesDir, _ := cmd.Flags().GetString("notes-dir")
	if notesDir == "" {
		notesDir = viper.GetString("notes_dir")
	}
	return types.NotesConfig{
		Model:      model,
		MaxRetries: viper.GetInt("max_retries"),
		NotesDir:   notesDir,
	}
}

// notesBackend builds the production backend from the resolved API key.
func notesBackend(cmd *cobra.Command, cfg types.NotesConfig) (notes.Backend, error) {
	flagKey, _ := cmd.Flags().GetString("api-key")
	apiKey := secretDefault("openai-api-key", "OPENAI_API_KEY", flagKey)
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key required: set .secrets/openai-api-key, OPENAI_API_KEY, or --api-key")
	}
	return notes.NewOpenAIBackend(apiKey, cfg.Model), nil
}

func init() {
	notesCmd.Flags().String("model", "", "chat-completion model identifier")
	notesCmd.Flags().String("api-key", "", "OpenAI API key (overrides secrets and environment)")
	notesCmd.Flags().String("notes-dir", "", "directory for saved notes (default: output/notes)")
	notesCmd.Flags().Bool("no-enhance", false, "skip the enhancement pass")

	rootCmd.AddCommand(notesCmd)
}
