package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iw2rmb/hexed"
	"github.com/iw2rmb/hexed/bytestore"
	"github.com/iw2rmb/hexed/highlight"
	"github.com/iw2rmb/hexed/hexview"
)

type model struct {
	view hexview.Model
}

func (m model) Init() tea.Cmd { return m.view.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.view.View() }

func newLogger(path, level string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	// The terminal belongs to the UI.
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func run() error {
	var (
		bytesPerRow = flag.Int("bytes-per-row", 16, "bytes shown per row")
		pageSize    = flag.Int("page-size", bytestore.DefaultPageSize, "page cache page size in bytes")
		cachePages  = flag.Int("cache-pages", bytestore.DefaultCacheCapacity, "pages kept in the cache")
		logFile     = flag.String("log-file", "", "write logs to this file")
		logLevel    = flag.String("log-level", "info", "log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "print the version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: hexed [flags] FILE\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(hexed.VersionTag())
		return nil
	}
	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected one file argument, got %d", flag.NArg())
	}

	log, err := newLogger(*logFile, *logLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store, err := bytestore.Open(flag.Arg(0),
		bytestore.WithPageSize(*pageSize),
		bytestore.WithCacheCapacity(*cachePages),
		bytestore.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	view := hexview.New(hexview.Config{
		Store:       store,
		BytesPerRow: *bytesPerRow,
		Style:       hexview.DefaultStyle(),
		Theme:       highlight.DefaultTheme(),
		KeyMap:      hexview.DefaultKeyMap(),
		Logger:      log,
	})

	p := tea.NewProgram(model{view: view}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	if store.HasPendingEdits() {
		log.Warn("exited with unsaved edits", zap.Int64("bytes", store.PendingBytes()))
		fmt.Fprintf(os.Stderr, "hexed: %d unsaved bytes discarded\n", store.PendingBytes())
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		_, _ = os.Stderr.WriteString("hexed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
