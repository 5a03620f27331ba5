package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultDotenvFiles are read in order; earlier files win because godotenv
// never overrides a variable that is already set.
var DefaultDotenvFiles = []string{".env.local", ".env"}

// LoadDotenv exports variables from the files that exist and skips the rest.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	return nil
}
