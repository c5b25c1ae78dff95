// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render compiles LaTeX sources to PDF through an external engine.
package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	binPdflatex = "pdflatex"
	binXelatex  = "xelatex"
)

// auxExtensions are the by-products removed after a successful compile.
var auxExtensions = []string{".aux", ".log", ".out", ".toc"}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	// Run executes name with args in dir and returns combined output.
	Run(dir, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

var defaultExec executor = &osExecutor{}

// Compiler runs a LaTeX engine against generated sources. The working
// directory is scoped per invocation through exec.Cmd.Dir, so the caller's
// working directory is never changed, on any exit path.
type Compiler struct {
	engine string
	exec   executor
}

// NewCompiler detects an available LaTeX engine, preferring pdflatex and
// falling back to xelatex. A missing engine is reported, not retried.
func NewCompiler() (*Compiler, error) {
	return newCompiler(defaultExec)
}

func newCompiler(exec executor) (*Compiler, error) {
	for _, bin := range []string{binPdflatex, binXelatex} {
		if _, err := exec.LookPath(bin); err == nil {
			return &Compiler{engine: bin, exec: exec}, nil
		}
	}
	return nil, fmt.Errorf(
		"no LaTeX engine available: neither %s nor %s found on PATH",
		binPdflatex, binXelatex,
	)
}

// Engine returns the detected engine name.
func (c *Compiler) Engine() string { return c.engine }

// Compile runs the engine twice over texPath (the second pass resolves
// cross-references) and returns the produced PDF path. On failure the
// captured engine output is included in the error and nothing is retried.
// Auxiliary files are removed on success only, so a failing run keeps its
// .log for inspection.
func (c *Compiler) Compile(texPath string) (string, error) {
	dir := filepath.Dir(texPath)
	base := filepath.Base(texPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	args := []string{"-interaction=nonstopmode", "-halt-on-error", base}
	for pass := 1; pass <= 2; pass++ {
		out, err := c.exec.Run(dir, c.engine, args...)
		if err != nil {
			return "", fmt.Errorf("%s pass %d failed for %s: %w\n%s",
				c.engine, pass, base, err, tail(out, 2000))
		}
	}

	pdfPath := filepath.Join(dir, stem+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("%s reported success but %s is missing: %w", c.engine, pdfPath, err)
	}

	for _, ext := range auxExtensions {
		os.Remove(filepath.Join(dir, stem+ext))
	}

	return pdfPath, nil
}

// tail returns the last n bytes of engine output, which is where LaTeX
// puts its error summary.
func tail(out []byte, n int) string {
	if len(out) <= n {
		return string(out)
	}
	return "..." + string(out[len(out)-n:])
}
