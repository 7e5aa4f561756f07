package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/logica/pkg/ports"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/aretw0/logica/pkg/survey/codec"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Store implements ports.DocumentStore on a directory of survey files.
// A document ID is its file name without extension.
type Store struct {
	BasePath string
	format   codec.Format
}

// Option configures the Store.
type Option func(*Store)

// WithFormat sets the format used for documents that do not exist yet.
func WithFormat(f codec.Format) Option {
	return func(s *Store) {
		s.format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to "surveys".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = "surveys"
	}
	s := &Store{BasePath: basePath, format: codec.JSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validID(id string) error {
	if id == "" {
		return fmt.Errorf("document id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid document id %q", id)
	}
	return nil
}

// find returns the existing file for id, or "" when there is none.
func (s *Store) find(id string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(s.BasePath, id+ext)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}
	return "", nil
}

// Save writes the document atomically: temp file, fsync, rename.
// An existing file keeps its format.
func (s *Store) Save(ctx context.Context, id string, doc *survey.Document) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure document directory: %w", err)
	}

	destPath, err := s.find(id)
	if err != nil {
		return err
	}
	if destPath == "" {
		destPath = filepath.Join(s.BasePath, id+"."+string(s.format))
	}

	data, err := codec.Encode(doc, codec.FormatFromPath(destPath))
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+id+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads and decodes the document file.
func (s *Store) Load(ctx context.Context, id string) (*survey.Document, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	path, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, ports.ErrDocumentNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	doc, err := codec.Decode(data, codec.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Delete removes the document file.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	path, err := s.find(id)
	if err != nil || path == "" {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete document file: %w", err)
	}
	return nil
}

// List returns the IDs of all survey files in the directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ext := filepath.Ext(name)
		for _, known := range extensions {
			if strings.EqualFold(ext, known) {
				id := strings.TrimSuffix(name, ext)
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}
