// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/noteforge/internal/notes"
	"github.com/pdiddy/noteforge/internal/store"
	"github.com/pdiddy/noteforge/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the record of pipeline runs (record, list, search, show, export)",
	Long: `History manages the local SQLite record of pipeline runs. Use
subcommands to record a notes file, list recent runs, search note bodies
with full-text search, show one run in full, or export everything as YAML.`,
}

var historyRecordCmd = &cobra.Command{
	Use:   "record [notes-file]",
	Short: "Record an existing notes file as a run",
	Long: `Record adds a previously saved Markdown notes file to the history
store without re-running the pipeline. The run ID is taken from --id, the
timestamp embedded in the filename, or the current time, in that order;
the title comes from the first heading of the notes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoID, _ := cmd.Flags().GetString("video-id")
		texPath, _ := cmd.Flags().GetString("tex")
		pdfPath, _ := cmd.Flags().GetString("pdf")
		id, _ := cmd.Flags().GetString("id")

		run, err := buildRunRecord(args[0], videoID, texPath, pdfPath, id)
		if err != nil {
			return err
		}

		s, err := store.NewStore(historyConfig(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Record(context.Background(), run); err != nil {
			return err
		}
		fmt.Printf("Recorded run %s (%s)\n", run.ID, run.Title)
		return nil
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.NewStore(historyConfig(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.List(context.Background())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}
		printRunHeader()
		for _, r := range runs {
			printRun(r)
		}
		return nil
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over titles and note bodies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.NewStore(historyConfig(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.Search(context.Background(), args[0])
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		printRunHeader()
		for _, r := range results {
			printRun(r.Run)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one run in full, including the note body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.NewStore(historyConfig(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		run, err := s.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		writeRunDetail(os.Stdout, run)
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all runs as YAML to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.NewStore(historyConfig(cmd))
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Export(context.Background(), os.Stdout)
	},
}

// notesFileIDPattern matches the timestamp identifier embedded in saved
// notes filenames, e.g. youtube_notes_20260115_093042.md.
var notesFileIDPattern = regexp.MustCompile(`\d{8}_\d{6}`)

// buildRunRecord assembles a Run from an existing notes file. An empty id
// falls back to the timestamp in the filename, then to the current time.
func buildRunRecord(notesPath, videoID, texPath, pdfPath, id string) (types.Run, error) {
	data, err := os.ReadFile(notesPath)
	if err != nil {
		return types.Run{}, fmt.Errorf("reading notes file: %w", err)
	}
	content := string(data)

	if id == "" {
		id = notesFileIDPattern.FindString(filepath.Base(notesPath))
	}
	if id == "" {
		id = notes.TimestampID(time.Now())
	}

	return types.Run{
		ID:        id,
		VideoID:   videoID,
		Title:     notes.Title(content),
		NotesPath: notesPath,
		TexPath:   texPath,
		PDFPath:   pdfPath,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Notes:     content,
	}, nil
}

func printRunHeader() {
	fmt.Printf("%-17s  %-11s  %-40s  %s\n", "ID", "Video", "Title", "PDF")
}

func printRun(r types.Run) {
	title := r.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}
	pdf := "-"
	if r.PDFPath != "" {
		pdf = r.PDFPath
	}
	fmt.Printf("%-17s  %-11s  %-40s  %s\n", r.ID, r.VideoID, title, pdf)
}

// writeRunDetail prints one run's metadata and its full note body.
func writeRunDetail(w io.Writer, r types.Run) {
	fmt.Fprintf(w, "ID:         %s\n", r.ID)
	if r.VideoID != "" {
		fmt.Fprintf(w, "Video:      %s\n", r.VideoID)
	}
	fmt.Fprintf(w, "Title:      %s\n", r.Title)
	fmt.Fprintf(w, "Created:    %s\n", r.CreatedAt)
	fmt.Fprintf(w, "Notes file: %s\n", r.NotesPath)
	if r.TexPath != "" {
		fmt.Fprintf(w, "LaTeX:      %s\n", r.TexPath)
	}
	if r.PDFPath != "" {
		fmt.Fprintf(w, "PDF:        %s\n", r.PDFPath)
	}
	fmt.Fprintf(w, "\n%s\n", r.Notes)
}

// historyConfig resolves store settings from flags and config.
func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	dataDir := ""
	if cmd.Flags().Lookup("data-dir") != nil {
		dataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if dataDir == "" {
		dataDir = viper.GetString("data_dir")
	}
	return types.HistoryConfig{
		DataDir:    dataDir,
		MaxResults: viper.GetInt("max_results"),
	}
}

func init() {
	historyCmd.PersistentFlags().String("data-dir", "", "base directory for the history store (default: data)")

	historyRecordCmd.Flags().String("video-id", "", "YouTube video ID the notes came from")
	historyRecordCmd.Flags().String("tex", "", "path to the generated LaTeX source, if any")
	historyRecordCmd.Flags().String("pdf", "", "path to the compiled PDF, if any")
	historyRecordCmd.Flags().String("id", "", "run ID (default: timestamp from the filename, then current time)")

	historyCmd.AddCommand(historyRecordCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
