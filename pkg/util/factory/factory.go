package factory

import (
	"context"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/catalog"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/convert"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/normalize"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/command"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/pkg/errors"
)

// Factory is the main interface for various client creations
type Factory interface {
	// NewTagSource creates the source the release tags are listed from
	NewTagSource(ctx context.Context, cfg *config.Config) (catalog.TagSource, error)

	// NewConverter creates the converter for the configured runtime
	NewConverter(ctx context.Context, cfg *config.Config, log log.Logger) (convert.Converter, error)

	// NewFormatter creates the formatter the output is normalized with
	NewFormatter(cfg *config.Config) normalize.Formatter

	NewCommandRunner() command.Runner

	// GetLog retrieves the log instance
	GetLog() log.Logger
}

// DefaultFactoryImpl is the default factory implementation
type DefaultFactoryImpl struct{}

// DefaultFactory returns the default factory implementation
func DefaultFactory() Factory {
	return &DefaultFactoryImpl{}
}

// NewTagSource implements interface
func (f *DefaultFactoryImpl) NewTagSource(ctx context.Context, cfg *config.Config) (catalog.TagSource, error) {
	if cfg.TagSource == config.TagSourceGit {
		return catalog.NewGitSource(cfg.GitURL), nil
	}

	return catalog.NewGitHubSource(ctx, catalog.GitHubOptions{
		Repository: cfg.GitHubRepo,
		BaseURL:    cfg.GitHubAPIURL,
		Token:      cfg.GitHubToken,
	})
}

// NewConverter implements interface
func (f *DefaultFactoryImpl) NewConverter(ctx context.Context, cfg *config.Config, log log.Logger) (convert.Converter, error) {
	switch cfg.Runtime {
	case config.RuntimeDocker:
		return convert.NewDockerCLIConverter(f.NewCommandRunner(), cfg.DockerBinary, cfg.Image, cfg.ConverterBinary), nil
	case config.RuntimeDockerAPI:
		return convert.NewDockerAPIConverter(ctx, cfg.Image, cfg.ConverterBinary, log)
	case config.RuntimeLocal:
		return &convert.LocalConverter{Runner: f.NewCommandRunner(), Binary: cfg.ConverterBinary}, nil
	}

	return nil, errors.Errorf("unknown runtime %q", cfg.Runtime)
}

// NewFormatter implements interface
func (f *DefaultFactoryImpl) NewFormatter(cfg *config.Config) normalize.Formatter {
	if cfg.Formatter == config.FormatterJq {
		return &normalize.JqFormatter{Runner: f.NewCommandRunner(), Binary: cfg.JqBinary}
	}

	return &normalize.SortKeysFormatter{}
}

// NewCommandRunner implements interface
func (f *DefaultFactoryImpl) NewCommandRunner() command.Runner {
	return command.NewRunner("")
}

// GetLog implements interface
func (f *DefaultFactoryImpl) GetLog() log.Logger {
	return log.GetInstance()
}
