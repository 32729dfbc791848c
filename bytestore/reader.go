package bytestore

import (
	"errors"
	"io"
)

var errNegativePosition = errors.New("bytestore: negative position")

// Reader reads the edited content of a Store. Its position is independent of
// any other Reader.
type Reader struct {
	s   *Store
	pos int64
}

var (
	_ io.ReadSeeker = (*Reader)(nil)
	_ io.ReaderAt   = (*Reader)(nil)
)

func (s *Store) NewReader() *Reader { return &Reader{s: s} }

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := r.s.Read(r.pos, int64(len(p)))
	if err != nil {
		return 0, err
	}
	if len(b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, b)
	r.pos += int64(n)
	return n, nil
}

func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errNegativePosition
	}
	b, err := r.s.Read(off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, b)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = r.pos + offset
	case io.SeekEnd:
		abs = r.s.Size() + offset
	default:
		return 0, errors.New("bytestore: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}
	r.pos = abs
	return abs, nil
}
