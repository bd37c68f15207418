package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/patthomasrick/kubernetes-json-schema/cmd/flags"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/catalog"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/convert"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/normalize"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/promote"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/report"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/scheduler"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/version"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/exit"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// FailedExitCode is returned by build --fail-on-error if a version failed
const FailedExitCode = 2

// BuildCmd is a struct that defines a command call for "build"
type BuildCmd struct {
	*flags.GlobalFlags

	FailOnError bool
	SkipPromote bool

	Ctx context.Context
}

// NewBuildCmd creates a new build command
func NewBuildCmd(f factory.Factory, globalFlags *flags.GlobalFlags, v *viper.Viper) *cobra.Command {
	cmd := &BuildCmd{GlobalFlags: globalFlags}

	buildCmd := &cobra.Command{
		Use:   "build [versions...]",
		Short: "Generates the schemas of all releases in range",
		Long: `
#######################################################
############ kubernetes-json-schema build #############
#######################################################
Lists all releases between earliest and latest, converts
every release that has not been built yet plus master,
sorts the keys of every generated file and copies the
latest patch release into its minor version directory.

If versions are given only these are built.
#######################################################`,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(f, v, args)
		},
	}

	buildCmd.Flags().BoolVar(&cmd.FailOnError, "fail-on-error", false, "Exit with code 2 if any version failed to build")
	buildCmd.Flags().BoolVar(&cmd.SkipPromote, "skip-promote", false, "Do not copy the latest patch releases into the minor version directories")
	buildCmd.Flags().String("report", "", "Write a yaml report of the run to this file")
	_ = v.BindPFlag("report", buildCmd.Flags().Lookup("report"))

	return buildCmd
}

// Run executes the command logic
func (cmd *BuildCmd) Run(f factory.Factory, v *viper.Viper, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	if cmd.Ctx == nil {
		cmd.Ctx = context.Background()
	}
	ctx, cancel := withSignals(cmd.Ctx, f.GetLog())
	defer cancel()

	logger := f.GetLog()
	start := time.Now()

	versions, err := cmd.versions(ctx, f, cfg, args)
	if err != nil {
		return err
	}

	converter, err := f.NewConverter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	invoker := convert.NewInvoker(converter, normalize.NewNormalizer(f.NewFormatter(cfg)), cfg.Verify)

	results := scheduler.New(invoker, scheduler.Options{
		Workers:     cfg.Workers,
		TaskTimeout: cfg.TaskTimeout,
	}, logger).Run(ctx, convert.NewTasks(versions, cfg.TaskOptions()))

	// promotion must not see a half finished batch
	var promotion *promote.Report
	if ctx.Err() == nil && !cmd.SkipPromote {
		promotion = promote.NewPromoter(cfg.OutputRoot, logger).Promote(promotionCandidates(cfg.OutputRoot, versions, len(args) > 0, logger))
	}

	runReport := report.New(results, promotion)
	runReport.Range = cfg.Range().String()
	runReport.Duration = time.Since(start).Round(time.Second).String()
	runReport.Print(logger)

	if cfg.Report != "" {
		err = runReport.WriteFile(cfg.Report)
		if err != nil {
			return err
		}

		logger.Infof("Wrote report to %s", cfg.Report)
	}

	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), "build interrupted")
	}
	if failed := results.Failed(); cmd.FailOnError && len(failed) > 0 {
		return &exit.ReturnCodeError{
			ExitCode: FailedExitCode,
			Message:  fmt.Sprintf("%d versions failed: %s", len(failed), strings.Join(failed, ", ")),
		}
	}

	return nil
}

func (cmd *BuildCmd) versions(ctx context.Context, f factory.Factory, cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		seen := map[string]bool{}
		versions := []string{}
		for _, v := range args {
			if !version.IsMaster(v) {
				if _, err := version.Parse(v); err != nil {
					return nil, err
				}
			}

			// two tasks must never write the same output directory
			if !seen[v] {
				seen[v] = true
				versions = append(versions, v)
			}
		}

		return versions, nil
	}

	source, err := f.NewTagSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return catalog.NewCatalog(source, catalog.Options{
		Prefix: cfg.TagPrefix,
		Range:  cfg.Range(),
	}, f.GetLog()).ListVersions(ctx)
}

// promotionCandidates returns the versions the promoter has to look at. A partial
// build only sees some patch releases of a minor version, so the patch
// directories already in the output root are added for every minor it touched.
func promotionCandidates(outputRoot string, versions []string, partial bool, log log.Logger) []string {
	if !partial {
		return versions
	}

	minors := map[string]bool{}
	for minor := range promote.Group(versions) {
		minors[minor] = true
	}
	if len(minors) == 0 {
		return versions
	}

	onDisk, err := builtVersions(outputRoot)
	if err != nil {
		log.Debugf("Promoting the given versions only: %v", err)
		return versions
	}

	candidates := append([]string{}, versions...)
	for _, v := range onDisk {
		minor, err := version.Minor(v)
		if err == nil && minor != v && minors[minor] {
			candidates = append(candidates, v)
		}
	}

	return candidates
}

// withSignals returns a context that is cancelled on the first SIGINT or SIGTERM
func withSignals(parent context.Context, log log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-c:
			log.Warnf("Received %s, stopping running conversions", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(c)
		cancel()
	}
}
