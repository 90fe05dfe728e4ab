package storage

// Provider is the generic key-value persistence primitive backing both the
// check-in collection and reminder settings. Values are opaque strings (JSON
// encoded by the owning module); a missing key is reported via the bool return
// rather than an error.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value access
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error

	// Utils
	GetConfigPath() string
}
