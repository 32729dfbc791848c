package hexview

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/hexed/bytestore"
	"github.com/iw2rmb/hexed/highlight"
)

// Config configures the hex view Model.
type Config struct {
	Store *bytestore.Store

	// Layout. Zero values select the viewport package defaults.
	BytesPerRow int
	WordSize    int

	Style Style
	// Theme styles highlight spans. A zero Theme draws none of them, cursor
	// included; use highlight.DefaultTheme for the stock look.
	Theme  highlight.Theme
	KeyMap KeyMap

	// Diff, when set, marks externally computed differences.
	Diff highlight.DiffSource

	// ReadOnly disables edit mode and every command that changes the file.
	ReadOnly bool

	// OnChange is called after an update that changed the content or moved
	// the cursor.
	OnChange func(ChangeEvent)

	Logger *zap.Logger
}
