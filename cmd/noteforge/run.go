// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/noteforge/internal/latex"
	"github.com/pdiddy/noteforge/internal/notes"
	"github.com/pdiddy/noteforge/internal/render"
	"github.com/pdiddy/noteforge/internal/store"
	"github.com/pdiddy/noteforge/internal/transcript"
	"github.com/pdiddy/noteforge/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [video-url-or-id]",
	Short: "Run the full pipeline: transcript, notes, LaTeX, PDF",
	Long: `Run executes every pipeline stage in sequence: fetch the transcript
(or read one with --transcript-file), generate and enhance notes, save
them as Markdown, convert to LaTeX, compile to PDF, and record the run
in the history store. Use --skip-pdf to stop after saving notes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	skipPDF, _ := cmd.Flags().GetBool("skip-pdf")

	stages := 4
	if skipPDF {
		stages = 2
	}
	bar := progressbar.NewOptions(stages,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("pipeline"),
		progressbar.OptionClearOnFinish(),
	)
	step := func(desc string) {
		bar.Describe(desc)
		bar.Add(1)
	}

	ctx := context.Background()
	cfg := notesConfig(cmd)

	// Stage 1: transcript.
	videoID := ""
	var text string
	if transcriptFile, _ := cmd.Flags().GetString("transcript-file"); transcriptFile != "" {
		data, err := os.ReadFile(transcriptFile)
		if err != nil {
			return fmt.Errorf("reading transcript file: %w", err)
		}
		text = string(data)
	} else {
		if len(args) == 0 {
			return fmt.Errorf("video URL or ID required (or --transcript-file)")
		}
		var err error
		videoID, err = transcript.ExtractVideoID(args[0])
		if err != nil {
			return err
		}
		text, err = transcript.Fetch(transcript.NewYouTubeFetcher(), videoID, transcriptConfig(cmd))
		if err != nil {
			return err
		}
	}
	step("generating notes")

	// Stage 2: notes.
	backend, err := notesBackend(cmd, cfg)
	if err != nil {
		return err
	}
	content, err := notes.Generate(ctx, backend, text, cfg)
	if err != nil {
		return err
	}
	content, err = notes.Enhance(ctx, backend, content, cfg)
	if err != nil {
		return err
	}

	id := notes.TimestampID(time.Now())
	notesPath, err := notes.Save(cfg.NotesDir, id, videoID, content)
	if err != nil {
		return err
	}

	run := types.Run{
		ID:        id,
		VideoID:   videoID,
		Title:     notes.Title(content),
		NotesPath: notesPath,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Notes:     content,
	}

	if !skipPDF {
		step("converting to LaTeX")

		// Stage 3: LaTeX source.
		texDir := viper.GetString("tex_dir")
		if err := os.MkdirAll(texDir, 0o755); err != nil {
			return fmt.Errorf("creating tex directory: %w", err)
		}
		texPath := filepath.Join(texDir, fmt.Sprintf("youtube_notes_%s.tex", id))
		if err := os.WriteFile(texPath, []byte(latex.Convert(content)), 0o644); err != nil {
			return fmt.Errorf("writing LaTeX file: %w", err)
		}
		run.TexPath = texPath
		step("compiling PDF")

		// Stage 4: PDF.
		compiler, err := render.NewCompiler()
		if err != nil {
			return err
		}
		pdfPath, err := compiler.Compile(texPath)
		if err != nil {
			return err
		}
		run.PDFPath = pdfPath
	}
	step("recording run")
	bar.Finish()

	s, err := store.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Record(ctx, run); err != nil {
		return err
	}

	fmt.Printf("Notes: %s\n", run.NotesPath)
	if run.PDFPath != "" {
		fmt.Printf("PDF:   %s\n", run.PDFPath)
	}
	return nil
}

func init() {
	runCmd.Flags().String("languages", "", "comma-separated preferred language codes (default: en,en-US,en-GB)")
	runCmd.Flags().String("transcript-file", "", "use a transcript file instead of fetching from YouTube")
	runCmd.Flags().String("model", "", "chat-completion model identifier")
	runCmd.Flags().String("api-key", "", "OpenAI API key (overrides secrets and environment)")
	runCmd.Flags().String("notes-dir", "", "directory for saved notes (default: output/notes)")
	runCmd.Flags().String("data-dir", "", "base directory for the history store (default: data)")
	runCmd.Flags().Bool("skip-pdf", false, "stop after saving the Markdown notes")

	rootCmd.AddCommand(runCmd)
}
