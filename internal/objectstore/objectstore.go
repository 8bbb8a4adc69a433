// Package objectstore keeps binary blobs (treatment photos) outside the
// database, in S3 compatible storage or in memory.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

var ErrNotFound = errors.New("objectstore: object not found")

// Object is an open blob; the caller closes Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)

	// Delete succeeds when the key is already gone.
	Delete(ctx context.Context, key string) error
}

type memoryObject struct {
	data        []byte
	contentType string
}

// Memory is the Store used with STORAGE=memory and in tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memoryObject)}
}

func (m *Memory) Put(ctx context.Context, key string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = memoryObject{data: bytes.Clone(body), contentType: contentType}
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{
		Body:        io.NopCloser(bytes.NewReader(o.data)),
		ContentType: o.contentType,
		Size:        int64(len(o.data)),
	}, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	return nil
}

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ Store = (*Memory)(nil)
