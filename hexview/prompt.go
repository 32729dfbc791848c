package hexview

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) openPrompt(kind promptKind) (Model, tea.Cmd) {
	m.prompt = kind
	m.input.Reset()
	switch kind {
	case promptGoto:
		m.input.Prompt = "goto: "
		m.input.Placeholder = "0x1f00, 7936, +16"
	case promptFind:
		m.input.Prompt = "find: "
		m.input.Placeholder = "text, hex:de ad, bits:1010"
		if len(m.query) > 0 {
			m.input.SetValue(m.lastQueryInput)
			m.input.CursorEnd()
		}
	}
	return m, m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		kind := m.prompt
		value := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		if value == "" {
			return m, nil
		}
		return m.submitPrompt(kind, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(kind promptKind, value string) (Model, tea.Cmd) {
	switch kind {
	case promptGoto:
		off, err := parseOffset(value, m.ctl.Cursor().Offset)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.lowNibble = false
		m.ctl.JumpTo(off)
		return m, nil

	case promptFind:
		next, err := m.SetQuery(value)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		next.lastQueryInput = value
		return next.findFrom(next.ctl.Cursor().Offset, false)
	}
	return m, nil
}

// parseOffset accepts "0x"-prefixed hex, decimal, and "+n"/"-n" relative to
// cur.
func parseOffset(s string, cur int64) (int64, error) {
	rel := int64(0)
	switch {
	case strings.HasPrefix(s, "+"):
		rel, s = 1, s[1:]
	case strings.HasPrefix(s, "-"):
		rel, s = -1, s[1:]
	}

	base := 10
	if t, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		s, base = t, 16
	}
	n, err := strconv.ParseInt(s, base, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	if rel != 0 {
		return cur + rel*n, nil
	}
	return n, nil
}
