package env

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Load reads the given files (e.g. ".env") and sets environment variables for each KEY=VALUE
// line. Variables already present in the environment are not overridden.
// Missing files are skipped; that is not an error.
func Load(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
