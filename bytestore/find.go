package bytestore

import "bytes"

const findChunk = 64 << 10

// Find searches the edited content for pattern. Forward search returns the
// first match starting at or after from; backward search returns the last
// match starting at or before from.
func (s *Store) Find(pattern []byte, from int64, backward bool) (int64, bool, error) {
	if len(pattern) == 0 {
		return -1, false, nil
	}
	if backward {
		return s.findBackward(pattern, from)
	}
	return s.findForward(pattern, from)
}

func (s *Store) findForward(pattern []byte, from int64) (int64, bool, error) {
	overlap := int64(len(pattern) - 1)
	pos := max(from, 0)
	for pos < s.Size() {
		b, err := s.Read(pos, findChunk+overlap)
		if err != nil {
			return -1, false, err
		}
		if i := bytes.Index(b, pattern); i >= 0 {
			return pos + int64(i), true, nil
		}
		if int64(len(b)) < findChunk+overlap {
			break
		}
		pos += findChunk
	}
	return -1, false, nil
}

func (s *Store) findBackward(pattern []byte, from int64) (int64, bool, error) {
	if from < 0 {
		return -1, false, nil
	}
	overlap := int64(len(pattern) - 1)
	end := min(from+int64(len(pattern)), s.Size())
	for end > 0 {
		start := max(0, end-findChunk-overlap)
		b, err := s.Read(start, end-start)
		if err != nil {
			return -1, false, err
		}
		if i := bytes.LastIndex(b, pattern); i >= 0 {
			return start + int64(i), true, nil
		}
		if start == 0 {
			break
		}
		end = start + overlap
	}
	return -1, false, nil
}
