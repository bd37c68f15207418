package cmd

import (
	"testing"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	fakefactory "github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory/testing"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/spf13/viper"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

func TestInitConfig(t *testing.T) {
	dir := fs.NewDir(t, "config", fs.WithFile("config.yaml", "workers: 12\nearliest: v1.20.0\nruntime: local\n"))
	defer dir.Remove()

	v := viper.New()
	config.SetDefaults(v)
	assert.NilError(t, initConfig(v, dir.Join("config.yaml"), log.Discard))

	cfg, err := config.Load(v)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Workers, 12)
	assert.Equal(t, cfg.Earliest, "v1.20.0")
	assert.Equal(t, cfg.Runtime, config.RuntimeLocal)
	assert.Equal(t, cfg.Latest, "v2.0.0")

	err = initConfig(viper.New(), dir.Join("missing.yaml"), log.Discard)
	assert.ErrorContains(t, err, "read config")
}

func TestRootCmdFlags(t *testing.T) {
	v := viper.New()
	rootCmd, globalFlags := NewRootCmd(&fakefactory.Factory{}, v)

	assert.NilError(t, rootCmd.PersistentFlags().Parse([]string{"--workers=6", "--debug", "--formatter", "jq"}))
	assert.Equal(t, globalFlags.Debug, true)

	cfg, err := config.Load(v)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Workers, 6)
	assert.Equal(t, cfg.Formatter, config.FormatterJq)

	names := []string{}
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.DeepEqual(t, names, []string{"build", "list", "normalize", "promote", "version"})
}
