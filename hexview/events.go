package hexview

import (
	"github.com/iw2rmb/hexed/bytestore"
	"github.com/iw2rmb/hexed/viewport"
)

// ChangeEvent describes the view after an update that edited content or
// moved the cursor.
type ChangeEvent struct {
	Version      uint64
	Cursor       viewport.Cursor
	Viewport     viewport.Viewport
	PendingBytes int64
}

func buildChangeEvent(m *Model) ChangeEvent {
	return ChangeEvent{
		Version:      m.store.Version(),
		Cursor:       m.ctl.Cursor(),
		Viewport:     m.ctl.Viewport(),
		PendingBytes: m.store.PendingBytes(),
	}
}

type refreshMsg struct{}

// windowMsg delivers the bytes of a requested window.
type windowMsg struct {
	seq     uint64
	offset  int64
	version uint64
	data    []byte
	err     error
}

type commitMsg struct {
	res bytestore.CommitResult
	err error
}

type reloadMsg struct {
	err error
}

type findMsg struct {
	offset int64
	found  bool
	err    error
}
