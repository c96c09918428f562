package storage

// MemoryStore keeps blobs in process memory. It backs tests and any caller
// that wants an ephemeral store with the same Provider contract as the
// durable backends.
type MemoryStore struct {
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

func (s *MemoryStore) Init() error { return nil }

func (s *MemoryStore) Load() error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	value, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *MemoryStore) Put(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.blobs[key] = stored
	return nil
}

func (s *MemoryStore) PutAll(blobs map[string][]byte) error {
	for key, value := range blobs {
		if err := s.Put(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Path() string {
	return ":memory:"
}
