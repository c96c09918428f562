package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps the blob namespace in a single JSON file on disk. Every
// Put rewrites the whole file; blob payloads stay embedded as raw JSON so
// they round-trip byte-for-byte in decoded form.
type JSONStore struct {
	path  string
	blobs map[string]json.RawMessage
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.blobs = make(map[string]json.RawMessage)
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'ritual init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.blobs = make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &s.blobs); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.blobs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, bool, error) {
	if s.blobs == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}

	value, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	if s.blobs == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.blobs[key] = json.RawMessage(value)
	return s.save()
}

func (s *JSONStore) PutAll(blobs map[string][]byte) error {
	if s.blobs == nil {
		return fmt.Errorf("storage not loaded")
	}

	for key, value := range blobs {
		s.blobs[key] = json.RawMessage(value)
	}
	return s.save()
}

func (s *JSONStore) Path() string {
	return s.path
}
