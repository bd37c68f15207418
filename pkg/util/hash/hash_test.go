package hash

import (
	"io/ioutil"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

func TestHashDirectory(t *testing.T) {
	dir := fs.NewDir(t, "hash",
		fs.WithFile("a.json", `{"a":1}`),
		fs.WithFile("b.json", `{"b":1}`),
		fs.WithFile(".checksum", "ignored"),
	)
	defer dir.Remove()

	first, err := Directory(dir.Path(), ".checksum")
	assert.NilError(t, err)

	// excluded files do not change the hash
	err = ioutil.WriteFile(dir.Join(".checksum"), []byte("changed"), 0644)
	assert.NilError(t, err)
	second, err := Directory(dir.Path(), ".checksum")
	assert.NilError(t, err)
	assert.Equal(t, first, second)

	// content changes do
	err = ioutil.WriteFile(dir.Join("b.json"), []byte(`{"b":2}`), 0644)
	assert.NilError(t, err)
	third, err := Directory(dir.Path(), ".checksum")
	assert.NilError(t, err)
	assert.Assert(t, first != third, "Hash did not change after content change")
}

func TestHashDirectoryIsIndependentOfLocation(t *testing.T) {
	a := fs.NewDir(t, "hash", fs.WithFile("pod.json", "{}"))
	defer a.Remove()
	b := fs.NewDir(t, "hash", fs.WithFile("pod.json", "{}"))
	defer b.Remove()

	hashA, err := Directory(a.Path())
	assert.NilError(t, err)
	hashB, err := Directory(b.Path())
	assert.NilError(t, err)
	assert.Equal(t, hashA, hashB)
}

func TestHashMissingDirectory(t *testing.T) {
	_, err := Directory("/does/not/exist")
	assert.ErrorContains(t, err, "hash /does/not/exist")
}
