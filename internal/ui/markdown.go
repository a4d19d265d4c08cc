package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// plainMarkdownStyle is glamour's built-in style for output without a terminal.
const plainMarkdownStyle = "notty"

// RenderMarkdown renders an entry's markdown for terminal display, wrapped
// to width columns. With styling disabled the plain-text style is used.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	styleOpt := glamour.WithStyles(markdownStyle())
	if !colorEnabled {
		styleOpt = glamour.WithStandardStyle(plainMarkdownStyle)
	}

	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	rendered = strings.TrimRight(rendered, "\n") + "\n"
	return rendered, nil
}

// markdownStyle is glamour's dark style with the journal margin and, when
// configured, the accent color on headings.
func markdownStyle() ansi.StyleConfig {
	style := styles.DarkStyleConfig
	margin := uint(MarkdownRenderMargin)
	style.Document.Margin = &margin
	if color, ok := AccentColor(); ok {
		style.Heading.Color = &color
	}
	return style
}
