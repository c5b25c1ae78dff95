// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/noteforge/internal/latex"
)

var latexCmd = &cobra.Command{
	Use:   "latex [markdown-file]",
	Short: "Convert Markdown notes to a LaTeX document",
	Long: `Latex converts a Markdown notes file into a complete LaTeX document:
fixed preamble, converted body with reserved characters escaped, fixed
postamble. The conversion is a pure text transformation and never fails;
compile errors belong to the render stage.`,
	Args: cobra.ExactArgs(1),
	RunE: runLatex,
}

func runLatex(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading markdown file: %w", err)
	}

	doc := latex.Convert(string(data))

	out, _ := cmd.Flags().GetString("out")
	if stdout, _ := cmd.Flags().GetBool("stdout"); stdout {
		fmt.Print(doc)
		return nil
	}
	if out == "" {
		out = texPathFor(args[0], viper.GetString("tex_dir"))
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing LaTeX file: %w", err)
	}
	fmt.Printf("LaTeX source written to %s\n", out)
	return nil
}

// texPathFor derives the .tex output path from the Markdown filename.
func texPathFor(mdPath, texDir string) string {
	base := filepath.Base(mdPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(texDir, stem+".tex")
}

func init() {
	latexCmd.Flags().String("out", "", "output .tex path (default: tex_dir/<name>.tex)")
	latexCmd.Flags().Bool("stdout", false, "print the document to stdout instead of writing a file")

	rootCmd.AddCommand(latexCmd)
}
