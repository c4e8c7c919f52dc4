package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/raphi011/instab/internal/prefix"
	"github.com/raphi011/instab/internal/storage"
)

// Ext is the file extension of a cache record.
const Ext = ".json"

// Record is the persisted state of one instance.
type Record struct {
	Color string   `json:"color"`
	URLs  []string `json:"urls"`
}

// Loaded is the result of reading a cache directory.
type Loaded struct {
	Records map[string]Record
	Skipped []*ReadError // records that could not be read; loading continued
}

// Prefixes returns the loaded prefixes in sorted order.
func (l *Loaded) Prefixes() []string {
	prefixes := make([]string, 0, len(l.Records))
	for p := range l.Records {
		prefixes = append(prefixes, p)
	}
	slices.Sort(prefixes)
	return prefixes
}

// Store reads and writes one JSON file per instance prefix in a directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created lazily.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the record file for p. p must already be validated.
func (s *Store) Path(p string) string {
	return filepath.Join(s.dir, p+Ext)
}

// LockPath returns the path of the lock file guarding SaveAll.
func (s *Store) LockPath() string {
	return filepath.Join(s.dir, ".instab.lock")
}

// LoadAll reads every record in the directory, creating it if missing.
// Malformed or unreadable records are reported in Loaded.Skipped and do not
// stop the others from loading. An error is returned only if the directory
// itself cannot be created or listed.
func (s *Store) LoadAll() (*Loaded, error) {
	loaded := &Loaded{Records: make(map[string]Record)}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return loaded, fmt.Errorf("create cache directory: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return loaded, fmt.Errorf("read cache directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Ext) {
			continue
		}
		path := filepath.Join(s.dir, name)
		key := strings.TrimSuffix(name, Ext)

		p, err := prefix.Validate(key)
		if err != nil || p != key {
			loaded.Skipped = append(loaded.Skipped, &ReadError{Prefix: key, Path: path, Err: prefix.ErrInvalid})
			continue
		}

		rec, err := readRecord(path)
		if err != nil {
			loaded.Skipped = append(loaded.Skipped, &ReadError{Prefix: p, Path: path, Err: err})
			continue
		}
		loaded.Records[p] = rec
	}

	return loaded, nil
}

// Load reads the record for a single prefix.
// Returns an error wrapping os.ErrNotExist if there is none.
func (s *Store) Load(p string) (Record, error) {
	p, err := prefix.Validate(p)
	if err != nil {
		return Record{}, err
	}
	path := s.Path(p)
	rec, err := readRecord(path)
	if err != nil {
		return Record{}, &ReadError{Prefix: p, Path: path, Err: err}
	}
	return rec, nil
}

func readRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parse record: %w", err)
	}
	if rec.URLs == nil {
		rec.URLs = []string{}
	}
	return rec, nil
}

// SaveAll writes one file per entry, overwriting existing records.
// Files for prefixes absent from records are left alone. Every entry is
// attempted; failures are returned joined as *WriteError values.
func (s *Store) SaveAll(records map[string]Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &WriteError{Path: s.dir, Err: err}
	}

	lock := NewFileLock(s.LockPath())
	if err := lock.Lock(); err != nil {
		return &WriteError{Path: s.LockPath(), Err: fmt.Errorf("acquire lock: %w", err)}
	}
	defer func() { _ = lock.Unlock() }()

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []error
	for _, key := range keys {
		if err := s.save(key, records[key]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) save(key string, rec Record) error {
	p, err := prefix.Validate(key)
	if err != nil || p != key {
		return &WriteError{Prefix: key, Path: s.dir, Err: prefix.ErrInvalid}
	}
	if rec.URLs == nil {
		rec.URLs = []string{}
	}

	path := s.Path(p)
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return &WriteError{Prefix: p, Path: path, Err: err}
	}

	if err := storage.WriteAtomic(path, data, 0o644); err != nil {
		return &WriteError{Prefix: p, Path: path, Err: err}
	}
	return nil
}

// Delete removes the record for p. A missing record is not an error.
func (s *Store) Delete(p string) error {
	p, err := prefix.Validate(p)
	if err != nil {
		return err
	}
	path := s.Path(p)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &WriteError{Prefix: p, Path: path, Err: err}
	}
	return nil
}
