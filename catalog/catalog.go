/*
Package catalog maintains a sqlite database indexing TGA files by path
and checksum, so that large texture trees can be searched without
re-reading every file.
*/
package catalog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one indexed texture.
type Entry struct {
	Path         string
	CRC          string
	Width        int
	Height       int
	Channels     int
	BitsPerPixel int
	RLE          bool
}

// DB is the texture catalog.
type DB struct {
	db *sql.DB
}

// New opens or creates the catalog database at file.
func New(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, channels INTEGER NOT NULL, bits INTEGER NOT NULL, rle INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS texture_crc ON texture (crc)"); err != nil {
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the catalog.
func (db *DB) Close() error {
	return db.db.Close()
}

// Put inserts or replaces the entry for its path.
func (db *DB) Put(e Entry) error {
	_, err := db.db.Exec("INSERT OR REPLACE INTO texture (path, crc, width, height, channels, bits, rle) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.Path, e.CRC, e.Width, e.Height, e.Channels, e.BitsPerPixel, e.RLE)
	return err
}

// FindByPath returns the entry for the given path, or nil if the path
// has not been indexed.
func (db *DB) FindByPath(path string) (*Entry, error) {
	e := Entry{Path: path}
	switch err := db.db.QueryRow("SELECT crc, width, height, channels, bits, rle FROM texture WHERE path = ?", path).Scan(&e.CRC, &e.Width, &e.Height, &e.Channels, &e.BitsPerPixel, &e.RLE); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &e, nil
	default:
		return nil, err
	}
}

// FindByCRC returns every entry sharing the given checksum; duplicate
// textures stored under different paths all match.
func (db *DB) FindByCRC(crc string) ([]Entry, error) {
	rows, err := db.db.Query("SELECT path, width, height, channels, bits, rle FROM texture WHERE crc = ? ORDER BY path", crc)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e := Entry{CRC: crc}
		if err := rows.Scan(&e.Path, &e.Width, &e.Height, &e.Channels, &e.BitsPerPixel, &e.RLE); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
