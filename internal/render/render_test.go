// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// call records one Run invocation.
type call struct {
	dir  string
	name string
	args []string
}

// fakeExecutor simulates a LaTeX engine. On successful runs it creates the
// PDF and auxiliary files the way a real engine would.
type fakeExecutor struct {
	available map[string]bool
	runErr    error
	output    []byte
	calls     []call
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.available[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeExecutor) Run(dir, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	if f.runErr != nil {
		return f.output, f.runErr
	}
	base := args[len(args)-1]
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, ext := range []string{".pdf", ".aux", ".log", ".out"} {
		if err := os.WriteFile(filepath.Join(dir, stem+ext), []byte("x"), 0o644); err != nil {
			return nil, err
		}
	}
	return f.output, nil
}

func writeTex(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	texPath := filepath.Join(dir, "youtube_notes_20260115_093042.tex")
	if err := os.WriteFile(texPath, []byte(`\documentclass{article}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return texPath
}

func TestNewCompiler_PrefersPdflatex(t *testing.T) {
	f := &fakeExecutor{available: map[string]bool{"pdflatex": true, "xelatex": true}}
	c, err := newCompiler(f)
	if err != nil {
		t.Fatal(err)
	}
	if c.Engine() != "pdflatex" {
		t.Errorf("engine = %q, want pdflatex", c.Engine())
	}
}

func TestNewCompiler_FallsBackToXelatex(t *testing.T) {
	f := &fakeExecutor{available: map[string]bool{"xelatex": true}}
	c, err := newCompiler(f)
	if err != nil {
		t.Fatal(err)
	}
	if c.Engine() != "xelatex" {
		t.Errorf("engine = %q, want xelatex", c.Engine())
	}
}

func TestNewCompiler_NoEngine(t *testing.T) {
	f := &fakeExecutor{}
	if _, err := newCompiler(f); err == nil || !strings.Contains(err.Error(), "no LaTeX engine") {
		t.Errorf("err = %v, want descriptive missing-engine error", err)
	}
}

func TestCompile_RunsTwicePerSource(t *testing.T) {
	f := &fakeExecutor{available: map[string]bool{"pdflatex": true}}
	c, err := newCompiler(f)
	if err != nil {
		t.Fatal(err)
	}

	texPath := writeTex(t)
	pdfPath, err := c.Compile(texPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.calls) != 2 {
		t.Fatalf("engine invoked %d times, want 2", len(f.calls))
	}
	for _, call := range f.calls {
		if call.dir != filepath.Dir(texPath) {
			t.Errorf("run dir = %q, want source dir", call.dir)
		}
		if call.args[len(call.args)-1] != filepath.Base(texPath) {
			t.Errorf("engine args = %v, want trailing source filename", call.args)
		}
	}

	if want := strings.TrimSuffix(texPath, ".tex") + ".pdf"; pdfPath != want {
		t.Errorf("pdfPath = %q, want %q", pdfPath, want)
	}
	if _, err := os.Stat(pdfPath); err != nil {
		t.Errorf("pdf not present: %v", err)
	}
}

func TestCompile_RemovesAuxiliaryFilesOnSuccess(t *testing.T) {
	f := &fakeExecutor{available: map[string]bool{"pdflatex": true}}
	c, _ := newCompiler(f)

	texPath := writeTex(t)
	if _, err := c.Compile(texPath); err != nil {
		t.Fatal(err)
	}

	stem := strings.TrimSuffix(texPath, ".tex")
	for _, ext := range []string{".aux", ".log", ".out"} {
		if _, err := os.Stat(stem + ext); !os.IsNotExist(err) {
			t.Errorf("%s file not cleaned up", ext)
		}
	}
}

func TestCompile_FailureCapturesOutput(t *testing.T) {
	f := &fakeExecutor{
		available: map[string]bool{"pdflatex": true},
		runErr:    errors.New("exit status 1"),
		output:    []byte("! Undefined control sequence.\nl.12 \\badcommand"),
	}
	c, _ := newCompiler(f)

	_, err := c.Compile(writeTex(t))
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "Undefined control sequence") {
		t.Errorf("error does not carry engine diagnostics: %v", err)
	}
	if len(f.calls) != 1 {
		t.Errorf("engine invoked %d times after failure, want 1 (no retry)", len(f.calls))
	}
}
