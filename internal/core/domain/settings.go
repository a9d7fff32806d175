package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend selects the medium that holds the word table.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite persists words in a SQLite database file.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendMemory keeps words in process memory only.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// IsDurable returns true if words survive a process restart.
func (b StorageBackend) IsDurable() bool {
	return b == StorageBackendSQLite
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (durable)"
	case StorageBackendMemory:
		return "Memory (volatile)"
	default:
		return unknownDescription
	}
}

// StorageSettings holds durable medium configuration.
type StorageSettings struct {
	// Backend is the storage medium.
	Backend StorageBackend

	// DataDir is the directory holding the database file.
	// Empty means the default location under the user's home directory.
	DataDir string
}

// WatchSettings controls how commits made by other processes are picked up.
type WatchSettings struct {
	// Enabled turns on database file watching. Only meaningful for durable backends.
	Enabled bool

	// Debounce is the quiet period after the last file event before refreshing.
	Debounce time.Duration

	// MaxRefreshPerSecond bounds how often the store is re-read.
	MaxRefreshPerSecond int
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Storage StorageSettings
	Watch   WatchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
		Watch: WatchSettings{
			Enabled:             true,
			Debounce:            250 * time.Millisecond,
			MaxRefreshPerSecond: 4,
		},
	}
}

// WatchActive returns true if the store should follow external commits.
func (s AppSettings) WatchActive() bool {
	return s.Watch.Enabled && s.Storage.Backend.IsDurable()
}
