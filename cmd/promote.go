package cmd

import (
	"io/ioutil"
	"os"

	"github.com/patthomasrick/kubernetes-json-schema/cmd/flags"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/promote"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// PromoteCmd holds the promote cmd flags
type PromoteCmd struct {
	*flags.GlobalFlags
}

// NewPromoteCmd creates a new promote command
func NewPromoteCmd(f factory.Factory, globalFlags *flags.GlobalFlags, v *viper.Viper) *cobra.Command {
	cmd := &PromoteCmd{GlobalFlags: globalFlags}

	promoteCmd := &cobra.Command{
		Use:   "promote [versions...]",
		Short: "Copies the latest patch releases into their minor version directories",
		Long: `
#######################################################
########### kubernetes-json-schema promote ############
#######################################################
Copies the latest built patch release of every minor
version into the minor version directory, e.g. v1.29.3
into v1.29. Without arguments every version found in
the output root is considered.
#######################################################`,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(f, v, args)
		},
	}

	return promoteCmd
}

// Run executes the command logic
func (cmd *PromoteCmd) Run(f factory.Factory, v *viper.Viper, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	versions := args
	if len(versions) == 0 {
		versions, err = builtVersions(cfg.OutputRoot)
		if err != nil {
			return err
		}
	}

	promotion := promote.NewPromoter(cfg.OutputRoot, f.GetLog()).Promote(versions)
	if len(promotion.Failed) > 0 {
		return errors.Errorf("%d of %d minor versions could not be promoted", len(promotion.Failed), len(promotion.Failed)+len(promotion.Promoted))
	}

	return nil
}

// builtVersions returns the names of all directories in the output root
func builtVersions(outputRoot string) ([]string, error) {
	infos, err := ioutil.ReadDir(outputRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("output root %s does not exist, run build first", outputRoot)
		}
		return nil, err
	}

	versions := []string{}
	for _, info := range infos {
		if info.IsDir() {
			versions = append(versions, info.Name())
		}
	}

	return versions, nil
}
