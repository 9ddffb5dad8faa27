// Package localstore implements the always-available local tier: a small
// set of string-keyed slots on disk, each holding one JSON-serialized
// collection that is replaced wholesale on every write.
package localstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// Slot file names. Each slot is one file in the store directory.
const (
	entriesSlot  = "journal_entries.json"
	consentsSlot = "consent_histories.json"
	usernameSlot = "line_username"
)

// Store reads and writes the local collections. It carries no business
// logic beyond serialization: a corrupt or missing slot is recovered as an
// empty collection so callers never see a parse failure.
type Store struct {
	dir    string
	logger *log.Logger
}

// Open prepares a local store rooted at dir, creating it if needed.
// If logger is nil, a default logger writing to stderr is used.
func Open(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[localstore] ", log.LstdFlags)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local store directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// EntriesPath returns the path of the diary collection slot. The sync
// daemon watches this file for changes.
func (s *Store) EntriesPath() string {
	return filepath.Join(s.dir, entriesSlot)
}

// LoadEntries returns the full diary collection. A missing or corrupt
// slot yields an empty collection, never an error: local data problems
// are recovered here, not propagated.
func (s *Store) LoadEntries() []schema.RawRecord {
	entries := loadSlot[schema.RawRecord](s, entriesSlot)
	if entries == nil {
		entries = []schema.RawRecord{}
	}
	return entries
}

// SaveEntries replaces the diary collection wholesale.
func (s *Store) SaveEntries(entries []schema.RawRecord) error {
	if entries == nil {
		entries = []schema.RawRecord{}
	}
	return s.saveSlot(entriesSlot, entries)
}

// LoadConsents returns the cached consent histories.
func (s *Store) LoadConsents() []schema.ConsentHistory {
	consents := loadSlot[schema.ConsentHistory](s, consentsSlot)
	if consents == nil {
		consents = []schema.ConsentHistory{}
	}
	return consents
}

// SaveConsents replaces the consent cache wholesale.
func (s *Store) SaveConsents(consents []schema.ConsentHistory) error {
	if consents == nil {
		consents = []schema.ConsentHistory{}
	}
	return s.saveSlot(consentsSlot, consents)
}

// Username returns the local identity marker, or "" when none is set.
func (s *Store) Username() string {
	data, err := os.ReadFile(filepath.Join(s.dir, usernameSlot))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetUsername stores the local identity marker.
func (s *Store) SetUsername(username string) error {
	path := filepath.Join(s.dir, usernameSlot)
	if err := os.WriteFile(path, []byte(username+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write username slot: %w", err)
	}
	return nil
}

// loadSlot decodes a slot into a fresh collection. Missing files are
// silent; corrupt files are logged and yield nil. Decoding into a local
// keeps a partially-decoded slice from ever leaking out: json.Unmarshal
// fills elements before hitting a type mismatch further along.
func loadSlot[T any](s *Store, name string) []T {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Printf("WARNING: failed to read %s: %v (treating as empty)", name, err)
		}
		return nil
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Printf("WARNING: corrupt data in %s: %v (treating as empty)", name, err)
		return nil
	}
	return out
}

// saveSlot writes a slot atomically via temp file so a crash mid-write
// never leaves a truncated collection behind.
func (s *Store) saveSlot(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
