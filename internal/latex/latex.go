// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex converts Markdown study notes into a self-contained LaTeX
// document ready for pdflatex.
//
// Convert is a pure function: it tokenizes the input into a flat block
// sequence (heading, quote, list item, code block, plain line), renders each
// block, and escapes reserved characters as text is emitted. Structural
// commands produced by the renderer are never escaped, so conversion cannot
// mangle its own output. Conversion is not idempotent: feeding a rendered
// document back through Convert escapes its backslash commands' arguments
// like any other prose.
package latex

import (
	"regexp"
	"strings"
)

// preamble opens every rendered document. It declares the document class,
// page geometry, header/footer, the code-listing style, and the quotebox
// environment used for blockquotes. Constant, never derived from input.
const preamble = `\documentclass[11pt]{article}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage[margin=2.5cm]{geometry}
\usepackage{fancyhdr}
\usepackage{xcolor}
\usepackage{listings}
\usepackage[most]{tcolorbox}
\usepackage{hyperref}

\pagestyle{fancy}
\fancyhf{}
\fancyhead[L]{Study Notes}
\fancyhead[R]{\thepage}
\fancyfoot[C]{\today}

\definecolor{codebg}{RGB}{245,245,245}
\lstset{
  backgroundcolor=\color{codebg},
  basicstyle=\ttfamily\small,
  breaklines=true,
  frame=single,
  rulecolor=\color{gray},
}

\newtcolorbox{quotebox}{
  colback=gray!10,
  colframe=gray!60,
  boxrule=0.5pt,
  left=6pt,
  arc=2pt,
}

\begin{document}

`

// postamble closes every rendered document.
const postamble = `
\end{document}
`

// escapes maps each reserved LaTeX character to its escaped form, in
// application order. Braces are escaped before tilde and caret so the
// braces inside those two replacements survive as command arguments.
var escapes = []struct{ from, to string }{
	{"&", `\&`},
	{"%", `\%`},
	{"$", `\$`},
	{"#", `\#`},
	{"_", `\_`},
	{"{", `\{`},
	{"}", `\}`},
	{"~", `\textasciitilde{}`},
	{"^", `\textasciicircum{}`},
}

// escapeText replaces every reserved character in s with its escaped form.
func escapeText(s string) string {
	for _, e := range escapes {
		s = strings.ReplaceAll(s, e.from, e.to)
	}
	return s
}

// sectioning commands by heading level, index level-1.
var sectioning = []string{`\section`, `\subsection`, `\subsubsection`, `\paragraph`}

// blockKind discriminates the flat block sequence produced by parse.
type blockKind int

const (
	blockText blockKind = iota
	blockHeading
	blockQuote
	blockItem
	blockCode
)

// block is one tokenized unit of input. level is set for headings only;
// text holds the content with its marker stripped.
type block struct {
	kind  blockKind
	level int
	text  string
}

// orderedItemRe matches ordered-list markers: digits, a period, a space.
var orderedItemRe = regexp.MustCompile(`^\d+\. `)

// parse tokenizes Markdown into a flat block sequence. Markers are
// recognized at line start only. An unclosed code fence swallows the rest
// of the input; the renderer closes the environment at end of output.
func parse(source string) []block {
	lines := strings.Split(source, "\n")
	var blocks []block

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if strings.HasPrefix(line, "```") {
			var body []string
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(lines[i], "```") {
					break
				}
				body = append(body, lines[i])
			}
			blocks = append(blocks, block{kind: blockCode, text: strings.Join(body, "\n")})
			continue
		}

		if level, rest, ok := headingLine(line); ok {
			blocks = append(blocks, block{kind: blockHeading, level: level, text: rest})
			continue
		}

		if rest, ok := strings.CutPrefix(line, "> "); ok {
			blocks = append(blocks, block{kind: blockQuote, text: rest})
			continue
		}

		if rest, ok := strings.CutPrefix(line, "- "); ok {
			blocks = append(blocks, block{kind: blockItem, text: rest})
			continue
		}
		if m := orderedItemRe.FindString(line); m != "" {
			blocks = append(blocks, block{kind: blockItem, text: line[len(m):]})
			continue
		}

		blocks = append(blocks, block{kind: blockText, text: line})
	}

	return blocks
}

// headingLine reports whether line is a heading: one to four hash marks
// followed by a space. Five or more hashes is plain text.
func headingLine(line string) (level int, rest string, ok bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n < 1 || n > 4 || n >= len(line) || line[n] != ' ' {
		return 0, "", false
	}
	return n, line[n+1:], true
}

// renderInline converts emphasis and inline-code spans in s, escaping all
// plain text. Bold is resolved before italic at each position so ** is
// never consumed as two adjacent single markers. A marker with no closer,
// or with an empty span, is treated as literal text. Inline-code content
// is escaped but not scanned for nested emphasis.
func renderInline(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], "**") {
			if end := strings.Index(s[i+2:], "**"); end > 0 {
				b.WriteString(`\textbf{`)
				b.WriteString(renderInline(s[i+2 : i+2+end]))
				b.WriteString(`}`)
				i += end + 4
				continue
			}
		}
		if s[i] == '*' {
			if end := strings.IndexByte(s[i+1:], '*'); end > 0 {
				b.WriteString(`\textit{`)
				b.WriteString(renderInline(s[i+1 : i+1+end]))
				b.WriteString(`}`)
				i += end + 2
				continue
			}
		}
		if s[i] == '`' {
			if end := strings.IndexByte(s[i+1:], '`'); end > 0 {
				b.WriteString(`\texttt{`)
				b.WriteString(escapeText(s[i+1 : i+1+end]))
				b.WriteString(`}`)
				i += end + 2
				continue
			}
		}

		j := i + 1
		for j < len(s) && s[j] != '*' && s[j] != '`' {
			j++
		}
		b.WriteString(escapeText(s[i:j]))
		i = j
	}
	return b.String()
}

// Convert renders Markdown source as a complete LaTeX document. It is total
// over all inputs, performs no I/O, and holds no state between calls; empty
// input yields preamble and postamble only.
func Convert(source string) string {
	var b strings.Builder
	b.WriteString(preamble)

	if source != "" {
		renderBody(&b, parse(source))
	}

	b.WriteString(postamble)
	return b.String()
}

// renderBody writes the rendered block sequence to b. Maximal runs of list
// items share one itemize environment; a run still open at the end of the
// input is closed there. Each quoted line gets its own quotebox. Code-block
// interiors receive the same reserved-character escaping as prose.
func renderBody(b *strings.Builder, blocks []block) {
	inList := false
	for _, blk := range blocks {
		if blk.kind == blockItem {
			if !inList {
				b.WriteString("\\begin{itemize}\n")
				inList = true
			}
			b.WriteString(`\item `)
			b.WriteString(renderInline(blk.text))
			b.WriteString("\n")
			continue
		}
		if inList {
			b.WriteString("\\end{itemize}\n")
			inList = false
		}

		switch blk.kind {
		case blockHeading:
			b.WriteString(sectioning[blk.level-1])
			b.WriteString("{")
			b.WriteString(renderInline(blk.text))
			b.WriteString("}\n")
		case blockQuote:
			b.WriteString("\\begin{quotebox}\n")
			b.WriteString(renderInline(blk.text))
			b.WriteString("\n\\end{quotebox}\n")
		case blockCode:
			b.WriteString("\\begin{lstlisting}\n")
			b.WriteString(escapeText(blk.text))
			b.WriteString("\n\\end{lstlisting}\n")
		default:
			b.WriteString(renderInline(blk.text))
			b.WriteString("\n")
		}
	}
	if inList {
		b.WriteString("\\end{itemize}\n")
	}
}
