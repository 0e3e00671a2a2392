// Package position persists the cyclic position of a schedule between
// invocations.
//
// There is no locking around the state file. Two invocations started at the
// same time for the same schedule race on the read-modify-write and one
// advance can be lost. Callers that need stronger guarantees must serialize
// invocations themselves, for example with flock(1).
package position

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexander-akhmetov/cmdseq/internal/debug"
)

// FilePrefix is prepended to the fingerprint to form the state file name.
const FilePrefix = "cmdseq."

// ErrCorrupt matches any *CorruptError.
var ErrCorrupt = errors.New("corrupt state file")

// CorruptError is returned when the state file does not hold a non-negative integer.
type CorruptError struct {
	Path    string
	Content string
	Err     error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt state file %s: cannot parse %q: %v", e.Path, e.Content, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

// Store reads and writes a single position.
type Store interface {
	Load() (uint64, error)
	Save(pos uint64) error
}

// Path returns the state file location for a fingerprint inside dir.
func Path(dir, fingerprint string) string {
	return filepath.Join(dir, FilePrefix+fingerprint)
}

// FileStore keeps the position as decimal text in a file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns the stored position. A missing file is created holding 0.
func (s *FileStore) Load() (uint64, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		created, err := s.create()
		if err != nil {
			return 0, err
		}
		if created {
			debug.Logf("position: created %s", s.Path)
			return 0, nil
		}
		// lost the create race, read what the winner wrote
		data, err = os.ReadFile(s.Path)
		if err != nil {
			return 0, fmt.Errorf("read state file: %w", err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("read state file: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	pos, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &CorruptError{Path: s.Path, Content: raw, Err: err}
	}
	debug.Logf("position: loaded %d from %s", pos, s.Path)
	return pos, nil
}

// create writes "0" to a new state file. It reports false if the file
// already existed.
func (s *FileStore) create() (bool, error) {
	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create state file: %w", err)
	}
	if _, err := f.WriteString("0"); err != nil {
		f.Close()
		return false, fmt.Errorf("write state file: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close state file: %w", err)
	}
	return true, nil
}

// Save replaces the file contents with pos.
func (s *FileStore) Save(pos uint64) error {
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.FormatUint(pos, 10)), 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state file: %w", err)
	}
	debug.Logf("position: saved %d to %s", pos, s.Path)
	return nil
}
