package normalize

import (
	"bytes"
	"context"
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/command"
	"github.com/pkg/errors"
)

// Formatter rewrites a JSON document with its object keys sorted
type Formatter interface {
	Format(ctx context.Context, data []byte) ([]byte, error)
}

var sortedJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// SortKeysFormatter sorts keys in process. Its output matches `jq --sort-keys .`:
// two space indentation and a trailing newline.
type SortKeysFormatter struct{}

// Format implements Formatter
func (s *SortKeysFormatter) Format(ctx context.Context, data []byte) ([]byte, error) {
	var document interface{}
	err := sortedJSON.Unmarshal(data, &document)
	if err != nil {
		return nil, errors.Wrap(err, "parse json")
	}

	compact, err := sortedJSON.Marshal(document)
	if err != nil {
		return nil, errors.Wrap(err, "encode json")
	}

	// json.Indent only re-lays out tokens, so the string escaping chosen above survives
	out := &bytes.Buffer{}
	err = json.Indent(out, compact, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "indent json")
	}

	out.WriteByte('\n')
	return out.Bytes(), nil
}

// JqFormatter pipes the document through jq
type JqFormatter struct {
	Runner command.Runner
	Binary string
}

// Format implements Formatter
func (j *JqFormatter) Format(ctx context.Context, data []byte) ([]byte, error) {
	binary := j.Binary
	if binary == "" {
		binary = "jq"
	}

	args := []string{"--sort-keys", "."}
	result, err := j.Runner.Run(ctx, binary, args, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, errors.Errorf("%s exited with code %d: %s", command.String(binary, args), result.ExitCode, bytes.TrimSpace(result.Stderr))
	}

	return result.Stdout, nil
}
