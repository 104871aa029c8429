package testutil

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"
)

// ArchiveStore keeps archived reports in memory and hands out unsigned URLs under
// baseURL. It satisfies the export service's object store.
type ArchiveStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]ArchivedObject
}

// ArchivedObject is a stored report
type ArchivedObject struct {
	Data        []byte
	ContentType string
}

// NewArchiveStore creates an empty store
func NewArchiveStore(baseURL string) *ArchiveStore {
	return &ArchiveStore{baseURL: baseURL, objects: make(map[string]ArchivedObject)}
}

// Put stores a copy of data
func (s *ArchiveStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("archive: empty key")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = ArchivedObject{Data: buf, ContentType: contentType}
	s.mu.Unlock()
	return nil
}

// DownloadURL joins key onto the base URL
func (s *ArchiveStore) DownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	u, err := url.JoinPath(s.baseURL, key)
	if err != nil {
		return "", time.Time{}, err
	}
	return u, time.Now().Add(expiresIn), nil
}

// Get returns the stored object
func (s *ArchiveStore) Get(key string) (ArchivedObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}
