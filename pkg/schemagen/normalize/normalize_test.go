package normalize

import (
	"context"
	"fmt"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/command"
	fakecommand "github.com/patthomasrick/kubernetes-json-schema/pkg/util/command/testing"
	logtesting "github.com/patthomasrick/kubernetes-json-schema/pkg/util/log/testing"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

const unsorted = `{"type":"object","properties":{"spec":{"$ref":"_definitions.json#/definitions/io.k8s.api.core.v1.PodSpec"},"apiVersion":{"type":["string","null"],"enum":["v1"]}},"description":"Pod <is> a collection & more","x-kubernetes-group-version-kind":[{"version":"v1","kind":"Pod","group":""}],"minimum":1.50}`

const sorted = `{
  "description": "Pod <is> a collection & more",
  "minimum": 1.50,
  "properties": {
    "apiVersion": {
      "enum": [
        "v1"
      ],
      "type": [
        "string",
        "null"
      ]
    },
    "spec": {
      "$ref": "_definitions.json#/definitions/io.k8s.api.core.v1.PodSpec"
    }
  },
  "type": "object",
  "x-kubernetes-group-version-kind": [
    {
      "group": "",
      "kind": "Pod",
      "version": "v1"
    }
  ]
}
`

func TestSortKeysFormatter(t *testing.T) {
	out, err := (&SortKeysFormatter{}).Format(context.Background(), []byte(unsorted))
	assert.NilError(t, err)
	assert.Equal(t, string(out), sorted)
}

func TestSortKeysFormatterIsIdempotent(t *testing.T) {
	formatter := &SortKeysFormatter{}
	first, err := formatter.Format(context.Background(), []byte(unsorted))
	assert.NilError(t, err)
	second, err := formatter.Format(context.Background(), first)
	assert.NilError(t, err)
	assert.Equal(t, string(second), string(first))
}

func TestSortKeysFormatterWideDocument(t *testing.T) {
	definitions := []string{}
	for i := 19; i >= 0; i-- {
		definitions = append(definitions, fmt.Sprintf(`"io.k8s.v%02d":{"z":{"y":{"x":[%d]}},"a":null}`, i, i))
	}
	doc := `{"definitions":{` + strings.Join(definitions, ",") + `}}`

	out, err := (&SortKeysFormatter{}).Format(context.Background(), []byte(doc))
	assert.NilError(t, err)

	// keys come out in order on every level
	first := strings.Index(string(out), `"io.k8s.v00"`)
	last := strings.Index(string(out), `"io.k8s.v19"`)
	assert.Assert(t, first >= 0 && first < last, string(out))
	assert.Assert(t, strings.Index(string(out), `"a": null`) < strings.Index(string(out), `"z": {`), string(out))
	assert.Equal(t, strings.Count(string(out), `"x": [`), 20)
}

func TestSortKeysFormatterInvalidJSON(t *testing.T) {
	_, err := (&SortKeysFormatter{}).Format(context.Background(), []byte(`{"a":`))
	assert.ErrorContains(t, err, "parse json")
}

func TestNormalizeDir(t *testing.T) {
	dir := fs.NewDir(t, "normalize",
		fs.WithFile("pod.json", unsorted),
		fs.WithFile("_definitions.json", sorted),
		fs.WithFile("broken.json", `{"a":`),
		fs.WithFile("README.md", `{"b":1,"a":2}`),
		fs.WithDir("nested", fs.WithFile("deep.json", `{"b":1,"a":2}`)),
	)
	defer dir.Remove()

	logger := logtesting.NewCatchLogger()
	stats, err := NewNormalizer(&SortKeysFormatter{}).NormalizeDir(context.Background(), dir.Path(), logger)
	assert.NilError(t, err)
	assert.Equal(t, stats.Sorted, 1)
	assert.Equal(t, stats.Unchanged, 1)
	assert.Equal(t, len(stats.Failed), 1)
	assert.Equal(t, stats.Failed[0].Path, dir.Join("broken.json"))

	content, err := ioutil.ReadFile(dir.Join("pod.json"))
	assert.NilError(t, err)
	assert.Equal(t, string(content), sorted)

	// failed, non json and nested files keep their content
	content, _ = ioutil.ReadFile(dir.Join("broken.json"))
	assert.Equal(t, string(content), `{"a":`)
	content, _ = ioutil.ReadFile(dir.Join("README.md"))
	assert.Equal(t, string(content), `{"b":1,"a":2}`)
	content, _ = ioutil.ReadFile(dir.Join("nested", "deep.json"))
	assert.Equal(t, string(content), `{"b":1,"a":2}`)

	// second run is byte stable
	stats, err = NewNormalizer(&SortKeysFormatter{}).NormalizeDir(context.Background(), dir.Path(), logger)
	assert.NilError(t, err)
	assert.Equal(t, stats.Sorted, 0)
	assert.Equal(t, stats.Unchanged, 2)
	content, _ = ioutil.ReadFile(dir.Join("pod.json"))
	assert.Equal(t, string(content), sorted)
}

func TestNormalizeMissingDir(t *testing.T) {
	stats, err := NewNormalizer(&SortKeysFormatter{}).NormalizeDir(context.Background(), "/does/not/exist", logtesting.NewCatchLogger())
	assert.NilError(t, err)
	assert.Equal(t, stats.Sorted, 0)
}

func TestJqFormatter(t *testing.T) {
	runner := &fakecommand.FakeRunner{
		RunFn: func(call fakecommand.Call) (*command.Result, error) {
			if string(call.Stdin) == "broken" {
				return &command.Result{ExitCode: 2, Stderr: []byte("parse error\n")}, nil
			}
			return &command.Result{Stdout: []byte(sorted)}, nil
		},
	}
	formatter := &JqFormatter{Runner: runner}

	out, err := formatter.Format(context.Background(), []byte(unsorted))
	assert.NilError(t, err)
	assert.Equal(t, string(out), sorted)

	_, err = formatter.Format(context.Background(), []byte("broken"))
	assert.ErrorContains(t, err, "jq --sort-keys . exited with code 2: parse error")

	calls := runner.Calls()
	assert.Equal(t, len(calls), 2)
	assert.Equal(t, calls[0].Name, "jq")
	assert.DeepEqual(t, calls[0].Args, []string{"--sort-keys", "."})
	assert.Equal(t, string(calls[0].Stdin), unsorted)
}
