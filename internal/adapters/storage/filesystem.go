package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid"
)

// ImageStoreFilesystem writes post images under a root directory, one
// file per image, named by a fresh uuid so uploads never collide.
type ImageStoreFilesystem struct {
	root string
}

func NewImageStoreFilesystem(root string) (*ImageStoreFilesystem, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &ImageStoreFilesystem{root: root}, nil
}

func (s *ImageStoreFilesystem) Save(ctx context.Context, filename string, data []byte) (string, error) {
	name := uuid.Must(uuid.NewV4()).String() + filepath.Ext(filename)
	path := filepath.Join(s.root, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

func (s *ImageStoreFilesystem) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.Base(path)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
