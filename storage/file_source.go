package storage

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the data set from a local JSON file.
type FileSource struct {
	path string
}

// NewFileSource returns a Source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("file: read %q: %w", f.path, err)
	}
	return string(data), nil
}

func (f *FileSource) Close() error { return nil }
