package hexview

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/hexed/bytestore"
	"github.com/iw2rmb/hexed/viewport"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	case windowMsg:
		m.applyWindow(msg)
	case commitMsg:
		m.applyCommit(msg)
	case reloadMsg:
		m.applyReload(msg)
	case findMsg:
		m.applyFind(msg)
	case refreshMsg:
		if m.store != nil {
			m.ctl.SetFileLength(m.store.Size())
		}
	default:
		if m.prompt != promptNone {
			m.input, cmd = m.input.Update(msg)
		}
	}
	return m, tea.Batch(cmd, m.afterUpdate())
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.store == nil {
		return m, nil
	}
	if m.prompt != promptNone {
		return m.updatePrompt(msg)
	}
	m.status = ""

	if m.navigate(msg) {
		m.lowNibble = false
		return m, nil
	}

	km := m.cfg.KeyMap
	editing := m.ctl.Cursor().Mode == viewport.ModeEdit

	switch {
	case key.Matches(msg, km.ToggleColumn):
		m.column ^= 1
		m.lowNibble = false
		return m, nil
	case key.Matches(msg, km.ExitEdit):
		m.ctl.SetMode(viewport.ModeNormal)
		m.lowNibble = false
		return m, nil
	case key.Matches(msg, km.Commit):
		return m.commit()
	case key.Matches(msg, km.Reload):
		return m.reload()
	case key.Matches(msg, km.Discard):
		if !m.cfg.ReadOnly && m.store.HasPendingEdits() {
			m.store.DiscardEdits()
			m.lowNibble = false
			m.setStatus("edits discarded")
		}
		return m, nil
	}

	// In edit mode every printable key is data.
	if editing && msg.Type == tea.KeyRunes && !msg.Alt && !msg.Paste {
		m.editRunes(msg.Runes)
		return m, nil
	}

	switch {
	case key.Matches(msg, km.EnterEdit):
		if m.cfg.ReadOnly {
			m.setError("read-only view")
			return m, nil
		}
		m.ctl.SetMode(viewport.ModeEdit)
		m.lowNibble = false
	case key.Matches(msg, km.Goto):
		return m.openPrompt(promptGoto)
	case key.Matches(msg, km.Find):
		return m.openPrompt(promptFind)
	case key.Matches(msg, km.FindNext):
		return m.findFrom(m.ctl.Cursor().Offset+1, false)
	case key.Matches(msg, km.FindPrev):
		return m.findFrom(m.ctl.Cursor().Offset-1, true)
	}
	return m, nil
}

// navigate applies a movement binding and reports whether msg was one.
func (m *Model) navigate(msg tea.KeyMsg) bool {
	km := m.cfg.KeyMap
	c := m.ctl
	switch {
	case key.Matches(msg, km.Left):
		c.MoveCursor(-1)
	case key.Matches(msg, km.Right):
		c.MoveCursor(1)
	case key.Matches(msg, km.Up):
		c.MoveRows(-1)
	case key.Matches(msg, km.Down):
		c.MoveRows(1)
	case key.Matches(msg, km.WordLeft):
		c.WordBackward()
	case key.Matches(msg, km.WordRight):
		c.WordForward()
	case key.Matches(msg, km.FileStart):
		c.FileStart()
	case key.Matches(msg, km.FileEnd):
		c.FileEnd()
	case key.Matches(msg, km.Home):
		c.Home()
	case key.Matches(msg, km.End):
		c.End()
	case key.Matches(msg, km.PageUp):
		c.PageUp()
	case key.Matches(msg, km.PageDown):
		c.PageDown()
	case key.Matches(msg, km.HalfUp):
		c.HalfPageUp()
	case key.Matches(msg, km.HalfDown):
		c.HalfPageDown()
	default:
		return false
	}
	return true
}

func (m Model) commit() (Model, tea.Cmd) {
	switch {
	case m.cfg.ReadOnly:
		m.setError("read-only view")
		return m, nil
	case m.committing:
		return m, nil
	case !m.store.HasPendingEdits():
		m.setStatus("no changes")
		return m, nil
	}
	m.committing = true
	m.setStatus("saving…")
	store := m.store
	return m, func() tea.Msg {
		res, err := store.Commit()
		return commitMsg{res: res, err: err}
	}
}

func (m *Model) applyCommit(msg commitMsg) {
	m.committing = false
	m.ctl.SetFileLength(m.store.Size())

	if msg.err != nil {
		var cerr *bytestore.CommitError
		if errors.As(msg.err, &cerr) {
			m.setError(fmt.Sprintf("save failed at 0x%x after %d runs: %v", cerr.Offset, cerr.Committed, cerr.Err))
		} else {
			m.setError("save failed: " + msg.err.Error())
		}
		return
	}
	m.log.Debug("commit done", zap.Int("runs", msg.res.Runs), zap.Int64("bytes", msg.res.Bytes))
	m.setStatus(fmt.Sprintf("saved %d bytes", msg.res.Bytes))
}

func (m Model) reload() (Model, tea.Cmd) {
	if m.committing {
		return m, nil
	}
	store := m.store
	return m, func() tea.Msg {
		return reloadMsg{err: store.Reload()}
	}
}

func (m *Model) applyReload(msg reloadMsg) {
	if msg.err != nil {
		m.setError("reload failed: " + msg.err.Error())
		return
	}
	m.ctl.SetFileLength(m.store.Size())
	m.lowNibble = false
	m.setStatus("reloaded")
}

func (m Model) findFrom(from int64, backward bool) (Model, tea.Cmd) {
	if len(m.query) == 0 {
		m.setError("no search pattern")
		return m, nil
	}
	if m.searching {
		return m, nil
	}
	m.searching = true
	store, pattern := m.store, m.query
	return m, func() tea.Msg {
		off, ok, err := store.Find(pattern, from, backward)
		return findMsg{offset: off, found: ok, err: err}
	}
}

func (m *Model) applyFind(msg findMsg) {
	m.searching = false
	switch {
	case msg.err != nil:
		m.setError("search failed: " + msg.err.Error())
	case !msg.found:
		m.setStatus("pattern not found")
	default:
		m.lowNibble = false
		if m.ctl.Viewport().Contains(msg.offset) {
			m.ctl.SetCursor(msg.offset)
		} else {
			m.ctl.JumpTo(msg.offset)
		}
		m.setStatus(fmt.Sprintf("match at 0x%x", msg.offset))
	}
}
