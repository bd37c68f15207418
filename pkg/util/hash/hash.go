package hash

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Directory creates a hash value over the relative names and the contents of all
// regular files below path. Files whose base name is in excludes are ignored.
func Directory(path string, excludes ...string) (string, error) {
	hash := sha256.New()
	skip := map[string]bool{}
	for _, e := range excludes {
		skip[e] = true
	}

	// filepath.Walk visits in lexical order, so the hash is stable
	err := filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || skip[info.Name()] {
			return nil
		}

		relPath, err := filepath.Rel(path, filePath)
		if err != nil {
			return err
		}

		f, err := os.Open(filePath)
		if err != nil {
			return err
		}
		defer f.Close()

		_, _ = io.WriteString(hash, filepath.ToSlash(relPath)+";")
		_, err = io.Copy(hash, f)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(hash, ";")
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "hash %s", path)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
