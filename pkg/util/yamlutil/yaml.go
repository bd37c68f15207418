package yamlutil

import (
	"os"
	"path/filepath"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/fsutil"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// WriteYamlToFile marshals yamlData and replaces filePath with it. Missing
// parent directories are created.
func WriteYamlToFile(yamlData interface{}, filePath string) error {
	out, err := yaml.Marshal(yamlData)
	if err != nil {
		return errors.Wrap(err, "marshal yaml")
	}

	err = os.MkdirAll(filepath.Dir(filePath), 0755)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(filePath, out, 0644)
}
