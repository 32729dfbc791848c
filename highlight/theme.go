package highlight

import "github.com/charmbracelet/lipgloss"

// Theme maps span kinds to styles.
type Theme struct {
	Newline        lipgloss.Style
	Zero           lipgloss.Style
	Match          lipgloss.Style
	Edit           lipgloss.Style
	Diff           lipgloss.Style
	Cursor         lipgloss.Style
	CursorInactive lipgloss.Style
	CursorEdit     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Newline:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Zero:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Match:          lipgloss.NewStyle().Background(lipgloss.Color("58")).Foreground(lipgloss.Color("230")),
		Edit:           lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Diff:           lipgloss.NewStyle().Background(lipgloss.Color("52")),
		Cursor:         lipgloss.NewStyle().Background(lipgloss.Color("15")).Foreground(lipgloss.Color("0")),
		CursorInactive: lipgloss.NewStyle().Background(lipgloss.Color("239")).Foreground(lipgloss.Color("250")),
		CursorEdit:     lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0")),
	}
}

// Style returns the style for k.
func (t Theme) Style(k Kind) lipgloss.Style {
	switch k {
	case KindNewline:
		return t.Newline
	case KindZero:
		return t.Zero
	case KindMatch:
		return t.Match
	case KindEdit:
		return t.Edit
	case KindDiff:
		return t.Diff
	case KindCursor:
		return t.Cursor
	case KindCursorInactive:
		return t.CursorInactive
	case KindCursorEdit:
		return t.CursorEdit
	default:
		return lipgloss.NewStyle()
	}
}

func (t Theme) span(k Kind) StyleSpan { return StyleSpan{Kind: k, Style: t.Style(k)} }
