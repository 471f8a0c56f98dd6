package storage

// New picks a provider from the configured storage path: a postgres:// URL,
// a *.json path for the file store, or a SQLite database file.
func New(path string) Provider {
	switch {
	case IsPostgresURL(path):
		return NewPostgresStore(path)
	case IsFileStorePath(path):
		return NewFileStore(path)
	default:
		return NewSQLiteStore(path)
	}
}
