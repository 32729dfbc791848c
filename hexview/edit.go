package hexview

import "go.uber.org/zap"

func (m *Model) editRunes(runes []rune) {
	for _, r := range runes {
		if m.column == ColumnASCII {
			if r < 0x20 || r > 0x7e {
				continue
			}
			if !m.writeByte(m.ctl.Cursor().Offset, byte(r)) {
				return
			}
			m.ctl.MoveCursor(1)
			continue
		}

		d, ok := hexDigit(r)
		if !ok {
			continue
		}
		if !m.typeNibble(d) {
			return
		}
	}
}

// typeNibble overwrites the high nibble of the cursor byte, or the low nibble
// when the high one was just typed, and then advances.
func (m *Model) typeNibble(d byte) bool {
	off := m.ctl.Cursor().Offset
	b, ok := m.win.byteAt(off)
	if !ok {
		m.setError("byte not loaded yet")
		return false
	}

	if !m.lowNibble {
		if !m.writeByte(off, d<<4|b&0x0F) {
			return false
		}
		m.lowNibble = true
		return true
	}
	if !m.writeByte(off, b&0xF0|d) {
		return false
	}
	m.lowNibble = false
	m.ctl.MoveCursor(1)
	return true
}

func (m *Model) writeByte(off int64, b byte) bool {
	if err := m.store.Write(off, []byte{b}); err != nil {
		m.log.Debug("write rejected", zap.Int64("offset", off), zap.Error(err))
		m.setError(err.Error())
		return false
	}
	// Keep the loaded window in step until the refreshed one arrives.
	if i := off - m.win.offset; i >= 0 && i < int64(len(m.win.data)) {
		m.win.data[i] = b
	}
	return true
}

func hexDigit(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
