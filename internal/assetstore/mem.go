package assetstore

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// #region mem-store
// MemStore keeps decoded images in memory. It counts loads so callers can
// observe how often the image collaborator was hit.
type MemStore struct {
	mu     sync.RWMutex
	images map[string]image.Image
	loads  atomic.Int64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{images: make(map[string]image.Image)}
}

// Set registers img under path.
func (s *MemStore) Set(path string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[path] = img
}

// Exists reports whether path was registered.
func (s *MemStore) Exists(_ context.Context, path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.images[path]
	return ok
}

// LoadImage returns the image registered under path.
func (s *MemStore) LoadImage(_ context.Context, path string) (image.Image, error) {
	s.loads.Add(1)
	s.mu.RLock()
	img, ok := s.images[path]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetUnavailable, path)
	}
	return img, nil
}

// Loads returns the number of LoadImage calls so far.
func (s *MemStore) Loads() int64 {
	return s.loads.Load()
}

// #endregion mem-store
