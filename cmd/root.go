package cmd

import (
	"github.com/patthomasrick/kubernetes-json-schema/cmd/flags"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/exit"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/upgrade"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configName is the name of the config file in the home directory (without extension)
const configName = ".kubernetes-json-schema"

// NewRootCmd returns a new root command
func NewRootCmd(f factory.Factory, v *viper.Viper) (*cobra.Command, *flags.GlobalFlags) {
	rootCmd := &cobra.Command{
		Use:           "kubernetes-json-schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		Short:         "Generates JSON schemas for every Kubernetes release",
		Long: `Generates JSON schemas from the OpenAPI documents of every Kubernetes
release in a version range and promotes the latest patch release of each
minor version. Start a build with:

	kubernetes-json-schema build`,
	}

	config.SetDefaults(v)
	globalFlags := flags.SetGlobalFlags(rootCmd.PersistentFlags())
	err := flags.SetConfigFlags(rootCmd.PersistentFlags(), v)
	if err != nil {
		panic(err)
	}
	rootCmd.PersistentPreRunE = func(cobraCmd *cobra.Command, args []string) error {
		return initLogging(globalFlags)
	}

	rootCmd.AddCommand(NewBuildCmd(f, globalFlags, v))
	rootCmd.AddCommand(NewListCmd(f, globalFlags, v))
	rootCmd.AddCommand(NewPromoteCmd(f, globalFlags, v))
	rootCmd.AddCommand(NewNormalizeCmd(f, globalFlags, v))
	rootCmd.AddCommand(NewVersionCmd(f))

	if upgrade.GetVersion() != "" {
		rootCmd.Version = upgrade.GetVersion()
	}

	return rootCmd, globalFlags
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It returns the exit code of the process.
func Execute() int {
	f := factory.DefaultFactory()
	v := viper.GetViper()

	rootCmd, globalFlags := NewRootCmd(f, v)
	cobra.OnInitialize(func() {
		err := initConfig(v, globalFlags.ConfigPath, f.GetLog())
		if err != nil {
			f.GetLog().Fatal(err)
		}
	})

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	if exitErr, ok := err.(*exit.ReturnCodeError); ok {
		if exitErr.Message != "" {
			f.GetLog().Fail(exitErr.Message)
		}
		return exitErr.ExitCode
	}

	if globalFlags.Debug {
		f.GetLog().Errorf("%+v", err)
	} else {
		f.GetLog().Error(err)
	}
	return 1
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, configPath string, log log.Logger) error {
	if configPath != "" {
		// Use config file from the flag.
		v.SetConfigFile(configPath)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "find home directory")
		}

		v.AddConfigPath(home)
		v.SetConfigName(configName)
	}

	err := v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configPath == "" {
			return nil
		}

		return errors.Wrap(err, "read config")
	}

	log.Debugf("Using config file: %s", v.ConfigFileUsed())
	return nil
}

func initLogging(globalFlags *flags.GlobalFlags) error {
	level := logrus.InfoLevel
	if globalFlags.Debug {
		level = logrus.DebugLevel
	}
	if globalFlags.Silent {
		level = logrus.FatalLevel
	}

	logger := log.NewStdoutLogger(level, !globalFlags.NoColors)
	if globalFlags.LogFile != "" {
		fileLogger, err := log.NewFileLogger(globalFlags.LogFile, logrus.DebugLevel)
		if err != nil {
			return err
		}

		log.AddSink(logger, fileLogger)
	}

	log.SetInstance(logger)
	return nil
}
