package assetstore

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// #region dir-store
// DirStore serves assets from a directory tree on disk.
type DirStore struct {
	Root string
}

// NewDirStore returns a store rooted at root.
func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

// Exists reports whether any supported image file exists for p.
func (s *DirStore) Exists(_ context.Context, p string) bool {
	_, ok := s.locate(p)
	return ok
}

// LoadImage reads and decodes the image file for p.
func (s *DirStore) LoadImage(_ context.Context, p string) (image.Image, error) {
	file, ok := s.locate(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetUnavailable, p)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrAssetUnavailable, p, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrAssetUnavailable, p, err)
	}
	return img, nil
}

func (s *DirStore) locate(p string) (string, bool) {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return "", false
	}
	base := filepath.Join(s.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	for _, ext := range Extensions {
		info, err := os.Stat(base + ext)
		if err == nil && !info.IsDir() {
			return base + ext, true
		}
	}
	return "", false
}

// #endregion dir-store
