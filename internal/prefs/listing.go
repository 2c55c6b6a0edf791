package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const listingFile = "listing.json"

// Listing is the remembered state of the properties page.
type Listing struct {
	Order string `json:"order"`
}

// Store keeps preference files in Dir.
type Store struct {
	Dir string
}

// DefaultStore uses the per-user config directory.
func DefaultStore() (Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: filepath.Join(dir, "tokenestate")}, nil
}

func (s Store) SaveListing(l Listing) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.Dir, listingFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadListing returns the zero Listing when nothing was saved yet.
func (s Store) LoadListing() (Listing, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, listingFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Listing{}, nil
		}
		return Listing{}, err
	}
	var l Listing
	if err := json.Unmarshal(data, &l); err != nil {
		return Listing{}, err
	}
	return l, nil
}
