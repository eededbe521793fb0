package fingerprint

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

/**************************************************************************************************
** Entry is one cached fingerprint. Size and ModTime record the file state the fingerprint
** was computed against; a lookup with a different size or mtime is treated as a miss.
**************************************************************************************************/
type Entry struct {
	Path    string
	Size    int64
	ModTime int64
	SHA256  string
}

/**************************************************************************************************
** Cache persists fingerprints in a sqlite database so repeated runs over the same import
** directory skip re-hashing unchanged files.
**************************************************************************************************/
type Cache struct {
	db *sql.DB
}

/**************************************************************************************************
** OpenCache opens (creating if necessary) the fingerprint cache at dbPath.
**
** @param dbPath - Path of the sqlite database file
** @return *Cache - The opened cache
** @return error - Wrapped open or schema error
**************************************************************************************************/
func OpenCache(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS fingerprints (
		path TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		mtime INTEGER NOT NULL,
		sha256 TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Cache{db: db}, nil
}

/**************************************************************************************************
** Get returns the cached fingerprint for a path if it is still valid for the given file
** size and mtime.
**
** @param path - The file path
** @param size - Current file size
** @param modTime - Current file mtime (unix seconds)
** @return string - The cached sha256, or "" on a miss
** @return error - Wrapped query error
**************************************************************************************************/
func (c *Cache) Get(path string, size, modTime int64) (string, error) {
	var entry Entry
	row := c.db.QueryRow(`SELECT size, mtime, sha256 FROM fingerprints WHERE path = ?`, path)
	if err := row.Scan(&entry.Size, &entry.ModTime, &entry.SHA256); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to query fingerprint: %w", err)
	}
	if entry.Size != size || entry.ModTime != modTime {
		return "", nil
	}
	return entry.SHA256, nil
}

/**************************************************************************************************
** Put stores or replaces the fingerprint for a path.
**
** @param entry - The fingerprint to store
** @return error - Wrapped exec error
**************************************************************************************************/
func (c *Cache) Put(entry Entry) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO fingerprints (path, size, mtime, sha256) VALUES (?, ?, ?, ?)`,
		entry.Path, entry.Size, entry.ModTime, entry.SHA256,
	)
	if err != nil {
		return fmt.Errorf("failed to store fingerprint: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

/**************************************************************************************************
** FileCached computes a file's content identity through the cache: a valid cached entry is
** returned directly, otherwise the file is hashed and the cache updated.
**
** @param cache - The cache to consult, may be nil to always hash
** @param path - The file to fingerprint
** @return string - Hex sha256 digest
** @return error - Wrapped stat, hash or cache error
**************************************************************************************************/
func FileCached(cache *Cache, path string) (string, error) {
	if cache == nil {
		return File(path)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	size, modTime := stat.Size(), stat.ModTime().Unix()

	if cached, err := cache.Get(path, size, modTime); err != nil {
		return "", err
	} else if cached != "" {
		return cached, nil
	}

	digest, err := File(path)
	if err != nil {
		return "", err
	}
	if err := cache.Put(Entry{Path: path, Size: size, ModTime: modTime, SHA256: digest}); err != nil {
		return "", err
	}
	return digest, nil
}
