// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/noteforge/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [tex-file]",
	Short: "Compile a LaTeX document to PDF",
	Long: `Render compiles a .tex file to PDF with pdflatex (or xelatex when
pdflatex is absent). The engine runs twice so cross-references resolve;
auxiliary files are removed after a successful compile. Failures are
reported with the engine's diagnostic output and are not retried.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	compiler, err := render.NewCompiler()
	if err != nil {
		return err
	}

	pdfPath, err := compiler.Compile(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("PDF written to %s\n", pdfPath)
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
