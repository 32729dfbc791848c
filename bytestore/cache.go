package bytestore

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/iw2rmb/hexed/rangeset"
)

// pageCache holds unmodified disk pages keyed by page index.
//
// Loads run without the store lock. gen counts invalidations; a load started
// under an older generation is returned to its caller but never cached.
type pageCache struct {
	pageSize int
	pages    *lru.Cache[int64, []byte]
	loads    singleflight.Group

	mu  sync.Mutex
	gen uint64

	hits   atomic.Uint64
	misses atomic.Uint64
}

func newPageCache(pageSize, capacity int) *pageCache {
	pages, err := lru.New[int64, []byte](max(1, capacity))
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &pageCache{pageSize: pageSize, pages: pages}
}

func (c *pageCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// keep caches p unless the cache was invalidated since generation gen.
func (c *pageCache) keep(idx int64, p []byte, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		c.pages.Add(idx, p)
	}
}

// page returns page idx, loading it from f when absent. size is the file
// size and gen the cache generation both were observed at; the last page is
// short.
func (c *pageCache) page(f File, idx, size int64, gen uint64) ([]byte, error) {
	if p, ok := c.pages.Get(idx); ok {
		c.hits.Add(1)
		return p, nil
	}
	key := strconv.FormatUint(gen, 10) + ":" + strconv.FormatInt(idx, 10)
	v, err, _ := c.loads.Do(key, func() (any, error) {
		if p, ok := c.pages.Get(idx); ok {
			return p, nil
		}
		c.misses.Add(1)

		start := idx * int64(c.pageSize)
		want := min(int64(c.pageSize), size-start)
		if want <= 0 {
			return []byte{}, nil
		}
		buf := make([]byte, want)
		n, err := f.ReadAt(buf, start)
		if int64(n) < want {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("%w: read page %d at offset %d: %w", ErrIO, idx, start, err)
		}
		c.keep(idx, buf, gen)
		return buf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// fill copies disk bytes for [off, off+len(dst)) into dst.
func (c *pageCache) fill(f File, dst []byte, off, size int64, gen uint64) error {
	ps := int64(c.pageSize)
	for n := 0; n < len(dst); {
		pos := off + int64(n)
		idx := pos / ps
		p, err := c.page(f, idx, size, gen)
		if err != nil {
			return err
		}
		within := int(pos - idx*ps)
		if within >= len(p) {
			return fmt.Errorf("%w: page %d shorter than expected: %w", ErrIO, idx, io.ErrUnexpectedEOF)
		}
		n += copy(dst[n:], p[within:])
	}
	return nil
}

// invalidate drops every page overlapping iv.
func (c *pageCache) invalidate(iv rangeset.Interval) {
	if !iv.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	ps := int64(c.pageSize)
	for idx := iv.Start / ps; idx <= (iv.End-1)/ps; idx++ {
		c.pages.Remove(idx)
	}
}

func (c *pageCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.pages.Purge()
}

func (c *pageCache) cached(idx int64) bool { return c.pages.Contains(idx) }
