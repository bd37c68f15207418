package factory

import (
	"context"
	"testing"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/catalog"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/convert"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/normalize"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
)

func defaultConfig(t *testing.T) *config.Config {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.Load(v)
	assert.NilError(t, err)
	return cfg
}

func TestNewTagSource(t *testing.T) {
	cfg := defaultConfig(t)
	f := DefaultFactory()

	source, err := f.NewTagSource(context.Background(), cfg)
	assert.NilError(t, err)
	assert.Equal(t, source.String(), "github.com/kubernetes/kubernetes")

	cfg.TagSource = config.TagSourceGit
	source, err = f.NewTagSource(context.Background(), cfg)
	assert.NilError(t, err)
	_, ok := source.(*catalog.GitSource)
	assert.Assert(t, ok)
}

func TestNewConverter(t *testing.T) {
	cfg := defaultConfig(t)
	f := DefaultFactory()

	converter, err := f.NewConverter(context.Background(), cfg, log.Discard)
	assert.NilError(t, err)
	docker, ok := converter.(*convert.DockerCLIConverter)
	assert.Assert(t, ok)
	assert.Equal(t, docker.Image, "patthomasrick/openapi2jsonschema:latest")

	cfg.Runtime = config.RuntimeLocal
	converter, err = f.NewConverter(context.Background(), cfg, log.Discard)
	assert.NilError(t, err)
	local, ok := converter.(*convert.LocalConverter)
	assert.Assert(t, ok)
	assert.Equal(t, local.Binary, "openapi2jsonschema")

	cfg.Runtime = "podman"
	_, err = f.NewConverter(context.Background(), cfg, log.Discard)
	assert.ErrorContains(t, err, `unknown runtime "podman"`)
}

func TestNewFormatter(t *testing.T) {
	cfg := defaultConfig(t)
	f := DefaultFactory()

	_, ok := f.NewFormatter(cfg).(*normalize.SortKeysFormatter)
	assert.Assert(t, ok)

	cfg.Formatter = config.FormatterJq
	jq, ok := f.NewFormatter(cfg).(*normalize.JqFormatter)
	assert.Assert(t, ok)
	assert.Equal(t, jq.Binary, "jq")
}
