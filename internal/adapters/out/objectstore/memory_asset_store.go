package objectstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fablab/internal/pkg/errs"
)

const memoryScheme = "memory://"

// MemoryAssetStore keeps assets in process. It stands in for the bucket when
// no object storage is configured.
type MemoryAssetStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemoryAssetStore() *MemoryAssetStore {
	return &MemoryAssetStore{objects: make(map[string]memoryObject)}
}

func (s *MemoryAssetStore) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errs.NewValueIsRequiredError("key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return memoryScheme + key, nil
}

func (s *MemoryAssetStore) Remove(_ context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, memoryScheme)
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("image", fmt.Errorf("%q is not a memory reference", ref))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; !exists {
		return errs.NewObjectNotFoundError("image", key)
	}
	delete(s.objects, key)
	return nil
}

// Len reports the number of stored objects.
func (s *MemoryAssetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
