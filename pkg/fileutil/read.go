package fileutil

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// ErrFileTooLarge indicates that a file exceeded the caller's size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFileWithLimit reads a file up to limit bytes.
// It returns ErrFileTooLarge if the file is larger than the limit.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast if the size is already known to be too large
	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%d bytes, limit %d", info.Size(), limit)
	}

	r := io.LimitReader(f, limit+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "limit %d", limit)
	}

	return data, nil
}
