package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
)

// FileStore persists each collection as one JSON document on disk,
// mirroring the browser-storage layout the storefront started from.
// Writes go through a temp file plus rename so a crashed write never
// leaves a torn collection behind.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

type fileDocument struct {
	NextID  int64           `json:"next_id"`
	Records json.RawMessage `json:"records"`
}

// NewFile opens (creating if needed) a file store rooted at dir.
func NewFile(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(ctx context.Context, collection string, out any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	doc, err := s.readDocument(collection)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(doc.Records, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode collection "+collection)
	}
	return nil
}

func (s *FileStore) Save(ctx context.Context, collection string, records any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode collection "+collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.readDocument(collection)
	if err != nil {
		return err
	}
	doc.Records = raw
	return s.writeDocument(collection, doc)
}

func (s *FileStore) NextID(ctx context.Context, collection string) (int64, error) {
	if err := validateCollection(collection); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.readDocument(collection)
	if err != nil {
		return 0, err
	}
	doc.NextID++
	if err := s.writeDocument(collection, doc); err != nil {
		return 0, err
	}
	return doc.NextID, nil
}

func (s *FileStore) AdvanceCounter(ctx context.Context, collection string, to int64) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.readDocument(collection)
	if err != nil {
		return err
	}
	if doc.NextID >= to {
		return nil
	}
	doc.NextID = to
	return s.writeDocument(collection, doc)
}

func (s *FileStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "data dir unavailable")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) readDocument(collection string) (fileDocument, error) {
	raw, err := os.ReadFile(s.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return fileDocument{Records: json.RawMessage(emptyCollection)}, nil
	}
	if err != nil {
		return fileDocument{}, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read collection "+collection)
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fileDocument{}, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode collection file "+collection)
	}
	if len(doc.Records) == 0 {
		doc.Records = json.RawMessage(emptyCollection)
	}
	return doc, nil
}

func (s *FileStore) writeDocument(collection string, doc fileDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode collection file "+collection)
	}
	target := s.path(collection)
	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "stage collection write "+collection)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write collection "+collection)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "flush collection "+collection)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "commit collection "+collection)
	}
	return nil
}
