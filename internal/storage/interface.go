package storage

// Provider is a durable key-value namespace for JSON-encoded blobs. Each
// entity collection persists under its own stable key; a missing key is not
// an error.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	PutAll(blobs map[string][]byte) error

	// Utils
	Path() string
}
