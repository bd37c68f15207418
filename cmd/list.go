package cmd

import (
	"context"
	"path/filepath"

	"github.com/patthomasrick/kubernetes-json-schema/cmd/flags"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/catalog"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/normalize"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/version"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ListCmd holds the list cmd flags
type ListCmd struct {
	*flags.GlobalFlags

	Ctx context.Context
}

// NewListCmd creates a new list command
func NewListCmd(f factory.Factory, globalFlags *flags.GlobalFlags, v *viper.Viper) *cobra.Command {
	cmd := &ListCmd{GlobalFlags: globalFlags}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists the releases a build would convert",
		Long: `
#######################################################
############# kubernetes-json-schema list #############
#######################################################
Lists all releases between earliest and latest and
shows whether their output already exists.
#######################################################`,
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(f, v)
		},
	}

	return listCmd
}

// Run executes the command logic
func (cmd *ListCmd) Run(f factory.Factory, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if cmd.Ctx == nil {
		cmd.Ctx = context.Background()
	}

	logger := f.GetLog()
	source, err := f.NewTagSource(cmd.Ctx, cfg)
	if err != nil {
		return err
	}

	versions, err := catalog.NewCatalog(source, catalog.Options{
		Prefix: cfg.TagPrefix,
		Range:  cfg.Range(),
	}, logger).ListVersions(cmd.Ctx)
	if err != nil {
		return err
	}

	values := [][]string{}
	for _, v := range versions {
		minor := ""
		if !version.IsMaster(v) {
			minor, _ = version.Minor(v)
		}

		values = append(values, []string{v, minor, outputStatus(cfg.OutputRoot, v)})
	}

	log.PrintTable(logger, []string{"Version", "Minor", "Output"}, values)
	return nil
}

func outputStatus(outputRoot, v string) string {
	if version.IsMaster(v) {
		return "rebuilt every run"
	}

	files, err := normalize.ListJSONFiles(filepath.Join(outputRoot, v))
	if err != nil || len(files) == 0 {
		return "missing"
	}

	return "exists"
}
