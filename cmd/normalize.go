package cmd

import (
	"context"
	"path/filepath"

	"github.com/patthomasrick/kubernetes-json-schema/cmd/flags"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/normalize"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NormalizeCmd holds the normalize cmd flags
type NormalizeCmd struct {
	*flags.GlobalFlags

	Ctx context.Context
}

// NewNormalizeCmd creates a new normalize command
func NewNormalizeCmd(f factory.Factory, globalFlags *flags.GlobalFlags, v *viper.Viper) *cobra.Command {
	cmd := &NormalizeCmd{GlobalFlags: globalFlags}

	normalizeCmd := &cobra.Command{
		Use:   "normalize <dir>...",
		Short: "Sorts the keys of all json files in the given directories",
		Long: `
#######################################################
########## kubernetes-json-schema normalize ###########
#######################################################
Rewrites every *.json file directly inside the given
directories with sorted keys. Files that cannot be
parsed are reported and left untouched.
#######################################################`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(f, v, args)
		},
	}

	return normalizeCmd
}

// Run executes the command logic
func (cmd *NormalizeCmd) Run(f factory.Factory, v *viper.Viper, dirs []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if cmd.Ctx == nil {
		cmd.Ctx = context.Background()
	}

	logger := f.GetLog()
	normalizer := normalize.NewNormalizer(f.NewFormatter(cfg))
	for _, dir := range dirs {
		stats, err := normalizer.NormalizeDir(cmd.Ctx, dir, log.NewPrefixLogger("["+filepath.Base(dir)+"] ", logger))
		if err != nil {
			return err
		}

		logger.Donef("Sorted %d files in %s (%d unchanged, %d failed)", stats.Sorted, dir, stats.Unchanged, len(stats.Failed))
	}

	return nil
}
