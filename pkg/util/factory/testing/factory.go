package testing

import (
	"context"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/catalog"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/config"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/convert"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/schemagen/normalize"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/command"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/factory"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
)

// Make sure the test interface implements the interface
var _ factory.Factory = &Factory{}

// Factory implements the Factory interface
type Factory struct {
	TagSource catalog.TagSource
	Converter convert.Converter
	Formatter normalize.Formatter
	Runner    command.Runner
	Log       log.Logger
}

// NewTagSource implements interface
func (f *Factory) NewTagSource(ctx context.Context, cfg *config.Config) (catalog.TagSource, error) {
	return f.TagSource, nil
}

// NewConverter implements interface
func (f *Factory) NewConverter(ctx context.Context, cfg *config.Config, log log.Logger) (convert.Converter, error) {
	return f.Converter, nil
}

// NewFormatter implements interface
func (f *Factory) NewFormatter(cfg *config.Config) normalize.Formatter {
	if f.Formatter == nil {
		return &normalize.SortKeysFormatter{}
	}
	return f.Formatter
}

// NewCommandRunner implements interface
func (f *Factory) NewCommandRunner() command.Runner {
	return f.Runner
}

// GetLog implements interface
func (f *Factory) GetLog() log.Logger {
	if f.Log == nil {
		return log.Discard
	}
	return f.Log
}
