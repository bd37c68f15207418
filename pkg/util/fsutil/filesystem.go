package fsutil

import (
	"io/ioutil"
	"os"
	"path/filepath"

	recursiveCopy "github.com/otiai10/copy"
	"github.com/pkg/errors"
)

// Copy copies a file or a directory tree to a destination path
func Copy(sourcePath string, targetPath string) error {
	return recursiveCopy.Copy(sourcePath, targetPath)
}

// Exists reports whether something exists at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.IsDir()
}

// WriteFileAtomic writes data to a temporary file next to path and renames it over path,
// so readers either see the old or the new content but never a partial write
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := ioutil.TempFile(dir, "."+name+".tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, perm)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", tmpName)
	}

	err = os.Rename(tmpName, path)
	if err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "replace %s", path)
	}

	return nil
}
