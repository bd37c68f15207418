package cmd

import (
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/upgrade"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates a new version command
func NewVersionCmd(f factory.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of the cli",
		Args:  cobra.NoArgs,
		Run: func(cobraCmd *cobra.Command, args []string) {
			if upgrade.GetVersion() == "" {
				f.GetLog().Info("kubernetes-json-schema development build")
				return
			}

			suffix := ""
			if upgrade.IsPrerelease() {
				suffix = " (pre-release)"
			}
			f.GetLog().Infof("kubernetes-json-schema version %s%s", upgrade.GetRawVersion(), suffix)
		},
	}
}
