// Package help renders the key help shown inside the planner UI.
package help

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpMarkdown string

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

// Render formats the help for width columns. Styling is stripped so the
// text sits inside the UI's own theme.
func Render(width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 10)),
	)
	if err != nil {
		return "", err
	}
	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		return "", err
	}
	return ansiPattern.ReplaceAllString(content, ""), nil
}
