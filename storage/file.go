package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360studio/addressbook/model"
)

// FileStore reads and writes the address book JSON file.
type FileStore struct {
	path       string
	reconciler *Reconciler
	logger     *slog.Logger
}

// NewFileStore creates a store for the file at path.
func NewFileStore(path string, reconciler *Reconciler, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	if reconciler == nil {
		reconciler = NewReconciler(logger, nil)
	}
	return &FileStore{path: path, reconciler: reconciler, logger: logger}
}

// Path returns the data file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and reconciles the data file. A missing file yields an empty book
// with Report.Fresh set.
func (s *FileStore) Load() (*model.AddressBook, *Report, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("Data file not found, starting with an empty address book", "path", s.path)
		return model.NewAddressBook(), &Report{Source: s.path, Fresh: true}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read data file: %w", err)
	}

	return s.LoadBytes(data)
}

// LoadBytes reconciles an in-memory copy of the data file.
func (s *FileStore) LoadBytes(data []byte) (*model.AddressBook, *Report, error) {
	snap, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", s.path, err)
	}

	book, report, err := s.reconciler.Reconcile(snap)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	report.Source = s.path

	s.logger.Debug("Loaded address book",
		"path", s.path,
		"persons", len(book.Persons()),
		"tasks", len(book.Tasks()),
		"dropped", len(report.Invalid()))
	return book, report, nil
}

// Save writes book to the data file. The file is replaced atomically so a
// crash mid-write leaves the previous contents intact.
func (s *FileStore) Save(book *model.AddressBook) error {
	data, err := Encode(FromModel(book))
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// The replacement keeps the permissions of the file it replaces
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".addressbook-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set data file mode: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	s.logger.Debug("Saved address book", "path", s.path)
	return nil
}
