package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/tidwall/gjson"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// Store loads and saves one catalog's progress document under its storage key.
type Store struct {
	backend Backend
	cat     *rooms.Catalog
}

// New creates a store for cat on top of backend.
func New(backend Backend, cat *rooms.Catalog) *Store {
	return &Store{backend: backend, cat: cat}
}

// Key returns the fixed storage key documents are kept under.
func (s *Store) Key() string {
	return s.cat.StorageKey
}

// Load returns the stored document merged over the defaults. It never fails:
// a missing, unreadable or malformed document yields fresh defaults, and a
// stored field whose type does not fit keeps its default value.
func (s *Store) Load() *state.Document {
	raw, err := s.backend.Read(s.Key())
	if errors.Is(err, ErrNotFound) {
		return state.Defaults(s.cat)
	}
	if err != nil {
		log.Printf("store: read failed, starting fresh: %v", err)
		return state.Defaults(s.cat)
	}

	parsed := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !parsed.IsObject() {
		log.Printf("store: discarding unreadable document under %q", s.Key())
		return state.Defaults(s.cat)
	}

	base, err := json.Marshal(state.Defaults(s.cat))
	if err != nil {
		log.Printf("store: encode defaults: %v", err)
		return state.Defaults(s.cat)
	}
	merged, err := DeepMerge(base, raw)
	if err != nil {
		log.Printf("store: merge failed, starting fresh: %v", err)
		return state.Defaults(s.cat)
	}

	doc := state.Defaults(s.cat)
	if err := json.Unmarshal(merged, doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			log.Printf("store: decode failed, starting fresh: %v", err)
			return state.Defaults(s.cat)
		}
		log.Printf("store: kept defaults for mistyped field %q: %v", typeErr.Field, err)
	}
	return doc
}

// Save writes the whole document. Callers treat failures as best-effort.
func (s *Store) Save(doc *state.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.backend.Write(s.Key(), data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Clear removes the stored document.
func (s *Store) Clear() error {
	if err := s.backend.Delete(s.Key()); err != nil {
		return fmt.Errorf("clear document: %w", err)
	}
	return nil
}
