package bytestore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/iw2rmb/hexed/rangeset"
)

// patch is one Write's bytes. Entries of the pending set point at the patch
// they came from, so an entry split by a later overlapping write still slices
// into the original data.
type patch struct {
	base int64
	data []byte
}

func (p *patch) slice(iv rangeset.Interval) []byte {
	return p.data[iv.Start-p.base : iv.End-p.base]
}

// Store is a paged, edit-overlaid view of one file.
type Store struct {
	mu sync.RWMutex

	path     string
	open     Opener
	file     File
	readOnly bool
	size     int64

	pending *rangeset.Set[*patch]
	cache   *pageCache
	log     *zap.Logger

	version uint64
}

// CommitResult summarizes a Commit.
type CommitResult struct {
	// Runs is the number of contiguous pending runs written.
	Runs int
	// Bytes is the total number of bytes written.
	Bytes int64
	// Remaining is the number of runs still pending afterwards.
	Remaining int
}

// CacheStats reports page cache activity.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Pages  int
}

// Open opens path read-write when permitted and read-only otherwise.
// A missing file fails with ErrNotFound; an unreadable one with ErrAccess.
func Open(path string, opts ...Option) (*Store, error) {
	o := buildOptions(opts)

	f, ro, size, err := openFile(o.open, path)
	if err != nil {
		o.log.Debug("open failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	s := &Store{
		path:     path,
		open:     o.open,
		file:     f,
		readOnly: ro,
		size:     size,
		pending:  rangeset.NewFunc(func(a, b *patch) bool { return a == b }),
		cache:    newPageCache(o.pageSize, o.capacity),
		log:      o.log.With(zap.String("path", path)),
	}
	s.log.Info("opened",
		zap.Int64("size", size),
		zap.Bool("read_only", ro),
		zap.Int("page_size", o.pageSize),
		zap.Int("cache_pages", o.capacity),
	)
	return s, nil
}

func openFile(open Opener, path string) (File, bool, int64, error) {
	readOnly := false
	f, err := open(path, os.O_RDWR)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, 0, fmt.Errorf("open %s: %w: %w", path, ErrNotFound, err)
		}
		f, err = open(path, os.O_RDONLY)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, false, 0, fmt.Errorf("open %s: %w: %w", path, ErrNotFound, err)
			}
			return nil, false, 0, fmt.Errorf("open %s: %w: %w", path, ErrAccess, err)
		}
		readOnly = true
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, false, 0, fmt.Errorf("stat %s: %w: %w", path, ErrIO, err)
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, false, 0, fmt.Errorf("open %s: %w: is a directory", path, ErrAccess)
	}
	return f, readOnly, fi.Size(), nil
}

func (s *Store) Path() string { return s.path }

// Size returns the file length in bytes.
func (s *Store) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// ReadOnly reports whether the file was opened without write permission.
func (s *Store) ReadOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readOnly
}

// Version increments whenever the visible content may have changed.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Read returns up to length bytes starting at offset with pending edits
// applied. The result is clamped at end of file and never padded; an offset
// outside the file yields an empty slice.
//
// Disk reads happen without holding the store lock, so Write never waits for
// them. A read that raced a Commit, Reload or Close is retried.
func (s *Store) Read(offset, length int64) ([]byte, error) {
	for {
		s.mu.RLock()
		f, size, gen := s.file, s.size, s.cache.generation()
		s.mu.RUnlock()

		if f == nil {
			return nil, ErrClosed
		}
		if offset < 0 || offset >= size || length <= 0 {
			return []byte{}, nil
		}
		buf := make([]byte, min(length, size-offset))
		err := s.cache.fill(f, buf, offset, size, gen)

		s.mu.RLock()
		if s.file != f || s.cache.generation() != gen {
			s.mu.RUnlock()
			continue
		}
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		for _, e := range s.pending.Query(rangeset.Interval{Start: offset, End: offset + int64(len(buf))}) {
			copy(buf[e.Start-offset:], e.Value.slice(e.Interval))
		}
		s.mu.RUnlock()
		return buf, nil
	}
}

// Write records a same-length overwrite of data at offset. Nothing reaches the
// disk until Commit.
func (s *Store) Write(offset int64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return ErrClosed
	}
	if offset < 0 || offset > s.size || int64(len(data)) > s.size-offset {
		return &BoundsError{Offset: offset, Length: len(data), Size: s.size}
	}
	if len(data) == 0 {
		return nil
	}

	iv := rangeset.Interval{Start: offset, End: offset + int64(len(data))}
	s.pending.Insert(iv, &patch{base: offset, data: bytes.Clone(data)})
	s.version++
	return nil
}

// DiscardEdits drops every pending edit.
func (s *Store) DiscardEdits() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.Empty() {
		return
	}
	s.log.Debug("discard edits", zap.Int("runs", s.pending.Len()))
	s.pending.Clear()
	s.version++
}

func (s *Store) HasPendingEdits() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.pending.Empty()
}

// PendingRanges returns the pending runs intersecting iv, truncated to iv.
func (s *Store) PendingRanges(iv rangeset.Interval) []rangeset.Interval {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.pending.Query(iv)
	if len(entries) == 0 {
		return nil
	}
	out := make([]rangeset.Interval, len(entries))
	for i, e := range entries {
		out[i] = e.Interval
	}
	return out
}

// PendingBytes returns the number of bytes awaiting Commit.
func (s *Store) PendingBytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.pending.All() {
		n += e.Len()
	}
	return n
}

// Commit writes pending runs in ascending offset order. It stops at the first
// failing run and returns a *CommitError; runs written before it stay written.
func (s *Store) Commit() (CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res CommitResult
	if s.file == nil {
		return res, ErrClosed
	}
	runs := s.pending.All()
	if len(runs) == 0 {
		return res, nil
	}
	if s.readOnly {
		res.Remaining = len(runs)
		err := &CommitError{Offset: runs[0].Start, Err: fmt.Errorf("%w: %s is read-only", ErrAccess, s.path)}
		s.log.Error("commit refused", zap.Error(err))
		return res, err
	}

	for _, r := range runs {
		data := r.Value.slice(r.Interval)
		n, err := s.file.WriteAt(data, r.Start)
		if err == nil && n < len(data) {
			err = io.ErrShortWrite
		}
		if err != nil {
			// The run may be partly on disk now.
			s.cache.invalidate(r.Interval)
			if res.Runs > 0 {
				s.version++
			}
			res.Remaining = s.pending.Len()
			cerr := &CommitError{Offset: r.Start, Committed: res.Runs, Err: fmt.Errorf("%w: %w", ErrIO, err)}
			s.log.Error("commit failed",
				zap.Int64("offset", r.Start),
				zap.Int("committed", res.Runs),
				zap.Int("remaining", res.Remaining),
				zap.Error(err),
			)
			return res, cerr
		}

		s.pending.Remove(r.Interval)
		s.cache.invalidate(r.Interval)
		if r.End > s.size {
			// The old last page is cached short.
			if s.size > 0 {
				s.cache.invalidate(rangeset.Interval{Start: s.size - 1, End: s.size})
			}
			s.size = r.End
		}
		res.Runs++
		res.Bytes += int64(len(data))
	}
	s.version++
	s.log.Info("committed", zap.Int("runs", res.Runs), zap.Int64("bytes", res.Bytes))
	return res, nil
}

// Reload reopens the file and drops every cached page. Pending edits are
// kept. On failure the store is left exactly as it was.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return ErrClosed
	}
	f, ro, size, err := openFile(s.open, s.path)
	if err != nil {
		s.log.Error("reload failed", zap.Error(err))
		return err
	}

	old := s.file
	s.file = f
	s.readOnly = ro
	s.size = size
	s.cache.purge()
	s.version++

	if err := old.Close(); err != nil {
		s.log.Debug("close previous handle", zap.Error(err))
	}
	s.log.Info("reloaded",
		zap.Int64("size", size),
		zap.Bool("read_only", ro),
		zap.Int("pending_runs", s.pending.Len()),
	)
	return nil
}

// Close releases the file. Pending edits are lost.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.cache.purge()
	s.pending.Clear()
	return err
}

func (s *Store) CacheStats() CacheStats {
	return CacheStats{
		Hits:   s.cache.hits.Load(),
		Misses: s.cache.misses.Load(),
		Pages:  s.cache.pages.Len(),
	}
}
