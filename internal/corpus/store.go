// Package corpus persists crawled document records as a single JSON snapshot
// keyed by ref.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonesrussell/lingcrawl/internal/domain"
)

// ErrDuplicateRef is returned when inserting a ref that is already stored.
// Existing records are never overwritten; skip-if-present is what makes
// repeated runs against an unreliable site cheap.
var ErrDuplicateRef = errors.New("ref already in corpus")

// Store is an in-memory corpus bound to a snapshot file.
type Store struct {
	path    string
	records map[string]*domain.Record
}

// Load reads the snapshot at path. A missing file is not an error; the
// crawl simply starts from an empty corpus.
func Load(path string) (*Store, error) {
	s := &Store{
		path:    path,
		records: make(map[string]*domain.Record),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("decode corpus snapshot %s: %w", path, err)
	}

	return s, nil
}

// Save writes the full corpus as one snapshot, replacing any prior one.
// The write goes through a temp file in the same directory so a crash
// mid-write cannot clobber the previous snapshot.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode corpus snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace corpus snapshot: %w", err)
	}

	return nil
}

// Has reports whether a ref is already stored.
func (s *Store) Has(ref string) bool {
	_, ok := s.records[ref]
	return ok
}

// Insert adds a new record. Inserting an existing ref fails with
// ErrDuplicateRef.
func (s *Store) Insert(rec *domain.Record) error {
	if s.Has(rec.Ref) {
		return fmt.Errorf("%w: %s", ErrDuplicateRef, rec.Ref)
	}
	s.records[rec.Ref] = rec
	return nil
}

// Get returns the record for ref, or nil when absent.
func (s *Store) Get(ref string) *domain.Record {
	return s.records[ref]
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Refs returns all stored refs in ascending order.
func (s *Store) Refs() []string {
	refs := make([]string, 0, len(s.records))
	for ref := range s.records {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Normalize re-normalizes every stored record. The per-record pass is
// idempotent, so running it over records that are already canonical is a
// no-op; it also upgrades snapshots written before normalization changed.
func (s *Store) Normalize() {
	for _, rec := range s.records {
		domain.NormalizeRecord(rec)
	}
}
