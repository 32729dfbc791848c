package hexview

import tea "github.com/charmbracelet/bubbletea"

const wheelRows = 3

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.store == nil || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelUp:
		m.ctl.ScrollRows(-wheelRows)
	case tea.MouseButtonWheelDown:
		m.ctl.ScrollRows(wheelRows)
	case tea.MouseButtonLeft:
		if !m.focused || m.prompt != promptNone {
			return m, nil
		}
		off, col, ok := m.ScreenToOffset(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.ctl.SetCursor(off)
		m.column = col
		m.lowNibble = false
	}
	return m, nil
}
