// Package textwidth measures and fits strings to terminal cells without
// splitting grapheme clusters.
package textwidth

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Width returns the number of terminal cells text occupies.
func Width(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.StringWidth(text)
}

// Split returns the grapheme clusters of text.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Truncate cuts text to at most width cells, ending with an ellipsis when
// something was removed.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	limit := width - Width(ellipsis)
	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if used+w > limit {
			break
		}
		sb.WriteString(g.Str())
		used += w
	}
	if limit >= 0 {
		sb.WriteString(ellipsis)
	}
	return sb.String()
}

// TruncateLeft is like Truncate but keeps the end of text, which suits file
// paths.
func TruncateLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(text) <= width {
		return text
	}
	limit := width - Width(ellipsis)
	if limit < 0 {
		return ""
	}
	clusters := Split(text)
	used := 0
	i := len(clusters)
	for i > 0 {
		w := uniseg.StringWidth(clusters[i-1])
		if used+w > limit {
			break
		}
		used += w
		i--
	}
	return ellipsis + strings.Join(clusters[i:], "")
}

// PadRight fills text with spaces up to width cells.
func PadRight(text string, width int) string {
	if Width(text) >= width {
		return text
	}
	return runewidth.FillRight(text, width)
}

// Fit truncates or pads text to exactly width cells.
func Fit(text string, width int) string {
	return PadRight(Truncate(text, width), width)
}
