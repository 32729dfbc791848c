package bytestore

import "go.uber.org/zap"

const (
	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 4096
	// DefaultCacheCapacity is the number of pages kept when none is configured.
	DefaultCacheCapacity = 256
)

type options struct {
	pageSize int
	capacity int
	log      *zap.Logger
	open     Opener
}

// Option configures Open.
type Option func(*options)

// WithPageSize sets the cache page size in bytes. Values <= 0 select
// DefaultPageSize.
func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

// WithCacheCapacity sets how many pages the cache holds. Values <= 0 select
// DefaultCacheCapacity.
func WithCacheCapacity(pages int) Option {
	return func(o *options) { o.capacity = pages }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithOpener replaces the function used to open the backing file.
func WithOpener(fn Opener) Option {
	return func(o *options) { o.open = fn }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.pageSize <= 0 {
		o.pageSize = DefaultPageSize
	}
	if o.capacity <= 0 {
		o.capacity = DefaultCacheCapacity
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.open == nil {
		o.open = OSOpener
	}
	return o
}
