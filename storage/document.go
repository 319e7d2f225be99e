package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tharindraj/ctrl-alt-rock-voting/logging"
)

// DocumentStore reads and replaces whole collection documents.
// There is no partial update and no read-modify-write locking: the last writer wins.
type DocumentStore interface {
	Read(ctx context.Context, collection Collection, out any) error
	Write(ctx context.Context, collection Collection, doc any) error
}

// normalizer fills missing keys of a freshly loaded document with empty values.
type normalizer interface {
	normalize()
}

// readDocument loads a collection into doc. A missing document leaves doc at its
// defaults, and missing keys are filled by doc.normalize in one place.
func readDocument(ctx context.Context, store DocumentStore, collection Collection, doc normalizer) error {
	err := store.Read(ctx, collection, doc)
	if err != nil && !errors.Is(err, ErrDocumentNotFound) {
		return err
	}
	doc.normalize()
	return nil
}

// FileDocumentStore keeps each collection as <Dir>/<collection>.json.
type FileDocumentStore struct {
	Dir string

	// mu only keeps a single file write from interleaving with a read of the same file.
	mu sync.RWMutex
}

func NewFileDocumentStore(dir string) (*FileDocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logging.Log.Errorf("STORE: failed to create data dir %s: %v", dir, err)
		return nil, err
	}
	return &FileDocumentStore{Dir: dir}, nil
}

func (s *FileDocumentStore) path(collection Collection) string {
	return filepath.Join(s.Dir, string(collection)+".json")
}

func (s *FileDocumentStore) Read(ctx context.Context, collection Collection, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	data, err := os.ReadFile(s.path(collection))
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrDocumentNotFound
		}
		logging.Log.Errorf("STORE: failed to read %s: %v", collection, err)
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		logging.Log.Errorf("STORE: failed to decode %s: %v", collection, err)
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *FileDocumentStore) Write(ctx context.Context, collection Collection, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logging.Log.Errorf("STORE: failed to encode %s: %v", collection, err)
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.Dir, string(collection)+"-*.tmp")
	if err != nil {
		logging.Log.Errorf("STORE: failed to create temp file for %s: %v", collection, err)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		logging.Log.Errorf("STORE: failed to write %s: %v", collection, err)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		os.Remove(tmp.Name())
		logging.Log.Errorf("STORE: failed to replace %s: %v", collection, err)
		return err
	}
	logging.Log.Debugf("STORE: wrote %s (%d bytes)", collection, len(data))
	return nil
}
