package hexview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/hexed/highlight"
	"github.com/iw2rmb/hexed/internal/textwidth"
)

const hexDigits = "0123456789abcdef"

func (m Model) View() string {
	if m.store == nil {
		return ""
	}
	lines := m.renderRows()
	lines = append(lines, m.renderStatus())
	return strings.Join(lines, "\n")
}

func (m *Model) spans() []highlight.Span {
	iv := m.ctl.Window()
	if !iv.Valid() {
		return nil
	}
	ctx := highlight.Context{
		Data:    windowData{w: m.win, size: m.ctl.FileLength(), store: m.store},
		Cursor:  m.ctl.Cursor(),
		Focused: m.focused,
	}
	return m.pipe.Render(iv, ctx)
}

func (m *Model) renderRows() []string {
	st := m.cfg.Style
	l := m.layout()
	vp := m.ctl.Viewport()
	bpr := int64(l.bpr)
	end := vp.Offset + vp.Length
	cursorRow, _ := m.ctl.CursorRowCol()
	spans := m.spans()

	out := make([]string, 0, m.ctl.Rows())
	for r := 0; r < m.ctl.Rows(); r++ {
		rowOff := vp.Offset + int64(r)*bpr
		if rowOff >= end {
			out = append(out, "")
			continue
		}

		var sb strings.Builder
		addrStyle := st.Address
		if m.focused && rowOff/bpr == cursorRow {
			addrStyle = st.AddressActive
		}
		sb.WriteString(addrStyle.Render(fmt.Sprintf("%0*x:", l.addrDigits, rowOff)))
		sb.WriteString(" ")

		for c := int64(0); c < bpr; c++ {
			if c > 0 && c%8 == 0 {
				sb.WriteString(" ")
			}
			off := rowOff + c
			if off >= end {
				sb.WriteString("   ")
				continue
			}
			b, ok := m.win.byteAt(off)
			if !ok {
				sb.WriteString(st.Placeholder.Render(".."))
			} else {
				cell := string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
				sb.WriteString(styleAt(spans, off, st.Hex).Render(cell))
			}
			sb.WriteString(" ")
		}
		sb.WriteString(" ")

		for c := int64(0); c < bpr; c++ {
			off := rowOff + c
			if off >= end {
				break
			}
			b, ok := m.win.byteAt(off)
			if !ok {
				sb.WriteString(st.Placeholder.Render(" "))
				continue
			}
			sb.WriteString(styleAt(spans, off, st.ASCII).Render(string(printable(b))))
		}
		out = append(out, sb.String())
	}
	return out
}

// styleAt layers the highlight covering off over base.
func styleAt(spans []highlight.Span, off int64, base lipgloss.Style) lipgloss.Style {
	if sp, ok := highlight.At(spans, off); ok {
		return sp.Style.Inherit(base)
	}
	return base
}

func printable(b byte) byte {
	if b < 0x20 || b > 0x7e {
		return '.'
	}
	return b
}

func (m *Model) renderStatus() string {
	st := m.cfg.Style
	width := m.width
	if width <= 0 {
		width = m.layout().width()
	}

	if m.prompt != promptNone {
		return m.input.View()
	}

	cur := m.ctl.Cursor()
	right := fmt.Sprintf("0x%x/0x%x %s ", cur.Offset, m.ctl.FileLength(), cursorModeLabel(cur, m.column))
	if m.store.ReadOnly() || m.cfg.ReadOnly {
		right = "RO " + right
	}
	dirty := ""
	if m.store.HasPendingEdits() {
		dirty = "[+] "
	}

	leftWidth := width - textwidth.Width(right) - textwidth.Width(dirty)
	if leftWidth < 0 {
		return st.Status.Render(textwidth.Truncate(right, width))
	}
	left := " " + textwidth.TruncateLeft(m.store.Path(), max(8, leftWidth/2))
	if m.status != "" {
		left += "  " + m.status
	}

	base := st.Status
	if m.statusErr {
		base = st.StatusError
	}
	return base.Render(textwidth.Fit(left, leftWidth)) + st.StatusDirty.Render(dirty) + st.Status.Render(right)
}
