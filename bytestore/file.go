package bytestore

import (
	"io"
	"io/fs"
	"os"
)

// File is the backing file of a Store.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
	Stat() (fs.FileInfo, error)
}

// Opener opens path with os.OpenFile flags.
type Opener func(path string, flag int) (File, error)

// OSOpener opens files on the local file system.
func OSOpener(path string, flag int) (File, error) {
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	return f, nil
}
