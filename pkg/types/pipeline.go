// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data types passed between pipeline stages.
package types

// Segment is one timed unit of transcript text as returned by the
// transcript provider.
type Segment struct {
	// Text is the caption text for this segment.
	Text string `json:"text" yaml:"text"`

	// Start is the offset from the beginning of the video, in seconds.
	Start float64 `json:"start" yaml:"start"`

	// Duration is how long the segment is displayed, in seconds.
	Duration float64 `json:"duration" yaml:"duration"`
}

// Run records one pipeline execution: the video it processed and the
// artifacts it produced. Paths are empty for stages that were skipped.
type Run struct {
	// ID is a timestamp-derived identifier shared with the artifact
	// filenames, e.g. "20260115_093042".
	ID string `json:"id" yaml:"id"`

	// VideoID is the YouTube video identifier, empty when the transcript
	// was supplied directly.
	VideoID string `json:"video_id" yaml:"video_id"`

	// Title is the note title, taken from the first heading of the notes.
	Title string `json:"title" yaml:"title"`

	// NotesPath is the saved Markdown notes file.
	NotesPath string `json:"notes_path" yaml:"notes_path"`

	// TexPath is the generated LaTeX source file, if any.
	TexPath string `json:"tex_path,omitempty" yaml:"tex_path,omitempty"`

	// PDFPath is the compiled PDF, if any.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// CreatedAt is the run creation time in RFC 3339 UTC.
	CreatedAt string `json:"created_at" yaml:"created_at"`

	// Notes is the full Markdown body of the saved notes.
	Notes string `json:"notes" yaml:"notes"`
}

// TranscriptConfig controls transcript retrieval.
type TranscriptConfig struct {
	// Languages are preferred language codes, tried in order before
	// falling back to the provider default.
	Languages []string `yaml:"languages"`
}

// NotesConfig controls note generation and enhancement.
type NotesConfig struct {
	// Model is the chat-completion model identifier.
	Model string `yaml:"model"`

	// MaxRetries bounds backend retries per call; <= 0 uses the default.
	MaxRetries int `yaml:"max_retries"`

	// NotesDir is where Markdown notes files are written.
	NotesDir string `yaml:"notes_dir"`
}

// HistoryConfig controls the run history store.
type HistoryConfig struct {
	// DataDir is the base directory holding index/noteforge.db.
	DataDir string `yaml:"data_dir"`

	// MaxResults caps list and search output; <= 0 uses the default.
	MaxResults int `yaml:"max_results"`
}

// DefaultLanguages is the preferred transcript language order used when
// no configuration is supplied.
var DefaultLanguages = []string{"en", "en-US", "en-GB"}
