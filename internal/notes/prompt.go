// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"bytes"
	"fmt"
	"text/template"
)

// createPromptTmpl turns a raw transcript into structured study notes.
// The section layout matches the notes format the rest of the pipeline
// expects (headings, bold concept lists, quotes, numbered takeaways).
var createPromptTmpl = template.Must(template.New("create").Parse(`You are an expert note creator. Create comprehensive study notes from the provided video transcript.

Structure the notes exactly as follows, in Markdown:

# [Video Title - infer from content]

## Summary
[2-3 sentence overview of the main topic]

## Key Concepts
- **Concept**: brief explanation (one bullet per concept)

## Detailed Notes

### [Main Topic]
- Important point
- Supporting detail
- Example or application

(repeat the subsection for each main topic)

## Important Quotes
> "Notable quote from the video"

## Key Takeaways
1. Main learning point
2. Actionable insight
3. Important conclusion

## Action Items
- Task or follow-up
- Further research topic

Output only the complete notes in Markdown format, nothing else.

Transcript:
{{.Transcript}}
`))

// enhancePromptTmpl reworks generated notes with navigation and reference
// aids before typesetting.
var enhancePromptTmpl = template.Must(template.New("enhance").Parse(`You are a notes enhancement specialist. Improve the following Markdown study notes.

Apply these enhancements:
1. Add a table of contents after the title.
2. Convert list-shaped comparisons into Markdown tables where that reads better.
3. Add a short quick-reference section at the end.
4. Add a metadata line with the creation date {{.Date}} and topic tags.

Keep every heading, quote, and code block from the original. Output only the enhanced notes in Markdown format, nothing else.

Notes to enhance:
{{.Notes}}
`))

// renderCreatePrompt fills the note-creation template.
func renderCreatePrompt(transcript string) (string, error) {
	var buf bytes.Buffer
	if err := createPromptTmpl.Execute(&buf, struct{ Transcript string }{transcript}); err != nil {
		return "", fmt.Errorf("rendering create prompt: %w", err)
	}
	return buf.String(), nil
}

// renderEnhancePrompt fills the enhancement template.
func renderEnhancePrompt(notes, date string) (string, error) {
	var buf bytes.Buffer
	if err := enhancePromptTmpl.Execute(&buf, struct{ Notes, Date string }{notes, date}); err != nil {
		return "", fmt.Errorf("rendering enhance prompt: %w", err)
	}
	return buf.String(), nil
}
