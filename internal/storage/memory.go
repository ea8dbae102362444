package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory Store used in tests.
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
	seq   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// Put stores content under a synthetic locator.
func (m *Memory) Put(_ context.Context, ownerID uuid.UUID, filename string, content []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	locator := fmt.Sprintf("%s/%d_%s", ownerID, m.seq, filename)
	buf := make([]byte, len(content))
	copy(buf, content)
	m.files[locator] = buf
	return locator, nil
}

// Get returns stored content for a locator.
func (m *Memory) Get(_ context.Context, locator string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.files[locator]
	if !ok {
		return nil, fmt.Errorf("no file stored at %s", locator)
	}
	return content, nil
}

// Delete removes stored content. Returns false when absent.
func (m *Memory) Delete(_ context.Context, locator string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[locator]; !ok {
		return false, nil
	}
	delete(m.files, locator)
	return true, nil
}

// Len reports how many files are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
