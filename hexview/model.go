package hexview

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/hexed/bytestore"
	"github.com/iw2rmb/hexed/highlight"
	"github.com/iw2rmb/hexed/rangeset"
	"github.com/iw2rmb/hexed/viewport"
)

// Column is the byte column keyboard edits go to.
type Column uint8

const (
	ColumnHex Column = iota
	ColumnASCII
)

type promptKind uint8

const (
	promptNone promptKind = iota
	promptGoto
	promptFind
)

// Model is a Bubble Tea component that renders and edits a bytestore.Store.
type Model struct {
	cfg   Config
	store *bytestore.Store
	ctl   *viewport.Controller
	pipe  *highlight.Pipeline
	find  *highlight.Find
	log   *zap.Logger

	focused bool
	width   int
	height  int

	column Column
	// lowNibble is set after the high nibble of the cursor byte was typed.
	lowNibble bool

	win          window
	seq          uint64
	requested    rangeset.Interval
	requestedVer uint64

	prompt         promptKind
	input          textinput.Model
	query          []byte
	lastQueryInput string
	searching      bool
	committing     bool

	status    string
	statusErr bool

	lastVersion uint64
	lastCursor  viewport.Cursor
}

func New(cfg Config) Model {
	if cfg.KeyMap.empty() {
		cfg.KeyMap = DefaultKeyMap()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var size int64
	if cfg.Store != nil {
		size = cfg.Store.Size()
	}

	m := Model{
		cfg:     cfg,
		store:   cfg.Store,
		log:     log,
		focused: true,
		ctl: viewport.New(viewport.Config{
			FileLength:  size,
			BytesPerRow: cfg.BytesPerRow,
			Rows:        1,
			WordSize:    cfg.WordSize,
		}),
		input: textinput.New(),
	}
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m.pipe, m.find = highlight.NewDefault(cfg.Theme, cfg.Diff, highlight.WithLogger(log))
	if m.store != nil {
		m.lastVersion = m.store.Version()
	}
	m.lastCursor = m.ctl.Cursor()
	return m
}

func (m Model) Store() *bytestore.Store           { return m.store }
func (m Model) Controller() *viewport.Controller { return m.ctl }
func (m Model) Pipeline() *highlight.Pipeline    { return m.pipe }
func (m Model) Column() Column                   { return m.column }
func (m Model) Focused() bool                    { return m.focused }

// Init requests the first window.
func (m Model) Init() tea.Cmd {
	return Refresh
}

// Refresh is a command whose message makes the model re-check the store and
// reload the window if it is stale. Hosts use it after changing the store
// directly.
func Refresh() tea.Msg { return refreshMsg{} }

func (m Model) SetSize(width, height int) Model {
	m.width = max(0, width)
	m.height = max(0, height)
	// The last line is the status line.
	m.ctl.Resize(max(1, m.height-1))
	return m
}

func (m Model) Focus() Model {
	m.focused = true
	return m
}

func (m Model) Blur() Model {
	m.focused = false
	m.closePrompt()
	return m
}

// GotoOffset moves the cursor to off and centres it, returning the command
// that loads the new window.
func (m Model) GotoOffset(off int64) (Model, tea.Cmd) {
	m.ctl.JumpTo(off)
	m.lowNibble = false
	return m, m.afterUpdate()
}

// SetQuery sets the search pattern used by find next/previous and by match
// highlighting. Input uses the "ascii:", "hex:" and "bits:" prefixes.
func (m Model) SetQuery(input string) (Model, error) {
	p, _, err := highlight.ParseQuery(input)
	if err != nil {
		return m, err
	}
	m.query = p
	m.find.SetPattern(p)
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// afterUpdate notifies the host of changes and requests the window the
// current viewport needs.
func (m *Model) afterUpdate() tea.Cmd {
	if m.store == nil {
		return nil
	}
	ver := m.store.Version()
	cur := m.ctl.Cursor()
	if ver != m.lastVersion || cur != m.lastCursor {
		m.lastVersion = ver
		m.lastCursor = cur
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(buildChangeEvent(m))
		}
	}
	return m.syncWindow()
}
