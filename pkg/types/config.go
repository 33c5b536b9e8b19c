package types

// StorageBackend identifies the record store implementation.
type StorageBackend string

const (
	BackendFile   StorageBackend = "file"
	BackendSQLite StorageBackend = "sqlite"
)

// StoreConfig holds settings for the backing record stores.
type StoreConfig struct {
	// DataDir is the directory holding the backing files (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Backend selects the record store implementation: file or sqlite.
	Backend StorageBackend `json:"backend" yaml:"backend"`
}
