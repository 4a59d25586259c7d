package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

var markdownCodeTheme = ""

// ConfigureMarkdownCodeTheme sets the Chroma theme used for fenced code
// blocks in --preview output. Empty or unknown names keep the default.
func ConfigureMarkdownCodeTheme(theme string) {
	markdownCodeTheme = strings.ToLower(strings.TrimSpace(theme))
}

// RenderMarkdown renders markdown content for terminal display.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
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

func markdownStyle() ansi.StyleConfig {
	style := styles.DarkStyleConfig

	accent := AccentColor()
	style.Heading.StylePrimitive.Color = &accent
	style.Document.Margin = mdUintPtr(MarkdownRenderMargin)
	if markdownCodeTheme != "" {
		style.CodeBlock.Theme = markdownCodeTheme
	}
	return style
}

func mdUintPtr(v uint) *uint { return &v }
