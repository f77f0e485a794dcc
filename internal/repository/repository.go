package repository

import (
	"context"
	"encoding/json"
	"sync"
)

// Keys used by the application.
const (
	KeyAssignments = "assignments"
	KeyTheme       = "theme"
)

// KeyValueStore is the persistence collaborator: an opaque string key-value store.
type KeyValueStore interface {
	// Get returns the value stored under key; found is false when no value exists.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases the underlying resources.
	Close() error
}

// Record is the persisted encoding of one assignment. Field names are part
// of the storage format and must not change.
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	DueDate     string `json:"dueDate" yaml:"dueDate"`
	Subject     string `json:"subject" yaml:"subject"`
	Priority    string `json:"priority" yaml:"priority"`
	Description string `json:"description" yaml:"description"`
	Grade       *int   `json:"grade" yaml:"grade"`
	Completed   bool   `json:"completed" yaml:"completed"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
}

// EncodeRecords serializes the full collection.
func EncodeRecords(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeRecords parses a serialized collection. A JSON null decodes to an empty collection.
func DecodeRecords(value string) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// MemoryStore is a map-backed KeyValueStore.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements KeyValueStore.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set implements KeyValueStore.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close implements KeyValueStore.
func (m *MemoryStore) Close() error {
	return nil
}
