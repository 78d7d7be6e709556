package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/bank"
)

// JSONFile stores the roster as an indented JSON array of users in a single
// file.
type JSONFile struct {
	Path string
}

// LoadAllUsers implements Gateway. A missing file is an empty roster.
func (f *JSONFile) LoadAllUsers() (bank.Roster, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, data file %q does not exist, starting without users", f.Path)
		return bank.Roster{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, err := bank.DecodeRoster(file)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", f.Path, err)
	}
	return r, nil
}

// SaveAllUsers implements Gateway. The file is written next to its final
// location and then renamed over it, so a failed save leaves the previous
// content in place.
func (f *JSONFile) SaveAllUsers(r bank.Roster) error {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create data directory: %w", err)
		}
	}
	tmp := f.Path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := bank.EncodeRoster(file, r); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not write %q: %w", f.Path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, f.Path)
}
