package flags

import (
	"fmt"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// GlobalFlags is the flags that contains the global flags
type GlobalFlags struct {
	Silent     bool
	NoColors   bool
	Debug      bool
	ConfigPath string
	LogFile    string

	Flags *flag.FlagSet
}

// SetGlobalFlags applies the global flags
func SetGlobalFlags(flags *flag.FlagSet) *GlobalFlags {
	globalFlags := &GlobalFlags{
		Flags: flags,
	}

	flags.StringVar(&globalFlags.ConfigPath, "config", "", "The config file to use (default is $HOME/.kubernetes-json-schema.yaml)")
	flags.BoolVar(&globalFlags.NoColors, "no-colors", false, "Do not show color highlighting in log output. This avoids invisible output with different terminal background colors")
	flags.BoolVar(&globalFlags.Debug, "debug", false, "Prints the stack trace if an error occurs")
	flags.BoolVar(&globalFlags.Silent, "silent", false, "Run in silent mode and prevents any log output except panics & fatals")
	flags.StringVar(&globalFlags.LogFile, "log-file", "", "Additionally writes all logs as json lines to this file")

	return globalFlags
}

// configFlags are the config keys that can be overridden on the command line.
// github-token is left out on purpose so it does not end up in shell history.
var configFlags = []struct {
	key   string
	usage string
}{
	{"earliest", "The lowest release to build (inclusive)"},
	{"latest", "The highest release to build (inclusive)"},
	{"tag-prefix", "Only tags starting with this prefix are considered"},
	{"output-root", "The directory all versions are written to"},
	{"ref-base-url", "The URL the generated $ref prefixes point to"},
	{"schema-base-url", "The URL the OpenAPI documents are downloaded from"},
	{"schema-path", "The path of the OpenAPI document below the release"},
	{"workers", "The maximum number of versions converted in parallel"},
	{"task-timeout", "The maximum duration of a single conversion (0 for infinite)"},
	{"tag-source", "Where to list release tags from (github or git)"},
	{"github-repo", "The repository the tags are listed from"},
	{"github-api-url", "Overrides the GitHub API URL (e.g. for GitHub Enterprise)"},
	{"git-url", "The git remote the tags are listed from"},
	{"runtime", "How the converter is run (docker, docker-api or local)"},
	{"image", "The converter image"},
	{"converter-binary", "The converter command"},
	{"docker-binary", "The docker binary"},
	{"formatter", "How the output is sorted (native or jq)"},
	{"jq-binary", "The jq binary"},
	{"strict", "Disallow additional properties"},
	{"expanded", "Expand $refs in the generated schemas"},
	{"kubernetes", "Enable kubernetes specific processing"},
	{"stand-alone", "Resolve $refs so every schema stands alone"},
	{"verify", "Rebuild existing versions whose checksum does not match"},
}

// SetConfigFlags adds a flag for every config key and binds it to v, so a
// flag overrides the environment and the config file
func SetConfigFlags(flags *flag.FlagSet, v *viper.Viper) error {
	for _, f := range configFlags {
		switch def := config.Defaults[f.key].(type) {
		case bool:
			flags.Bool(f.key, def, f.usage)
		case int:
			flags.Int(f.key, def, f.usage)
		default:
			flags.String(f.key, fmt.Sprint(def), f.usage)
		}

		err := v.BindPFlag(f.key, flags.Lookup(f.key))
		if err != nil {
			return errors.Wrapf(err, "bind flag %s", f.key)
		}
	}

	return nil
}
