// Package store persists serialized boards for save and load.
package store

import (
	"bufio"
	"context"
	"os"

	"github.com/pkg/errors"
)

const filePerm = 0o644

// FileStore keeps one board in a plain text file
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Save creates or truncates the file and writes data to it
func (s *FileStore) Save(ctx context.Context, data []byte) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return errors.Wrapf(err, "[FileStore.Save] failed to open file: %+v", s.Path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrapf(closeErr, "[FileStore.Save] failed to close file: %+v", s.Path)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err = w.Write(data); err != nil {
		return errors.Wrapf(err, "[FileStore.Save] failed to write file: %+v", s.Path)
	}
	if err = w.Flush(); err != nil {
		return errors.Wrapf(err, "[FileStore.Save] failed to flush file: %+v", s.Path)
	}
	return nil
}

// Load reads the whole file
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "[FileStore.Load] failed to read file: %+v", s.Path)
	}
	return data, nil
}
