// Package droprecord implements the dropRecord command. It silently consumes
// records whose configured field matches one of the configured values;
// everything else is forwarded unchanged.
package droprecord

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
	"github.com/viant/toolbox"
)

// Name is the registry name of the command.
const Name = "dropRecord"

// Config represents command settings.
type Config struct {
	// Field names the record field matched against Values.
	Field string `json:"field" yaml:"field"`

	// Values lists the first-value matches that cause a drop; values are
	// compared by their string rendering.
	Values []interface{} `json:"values" yaml:"values"`
}

// Builder builds dropRecord commands.
type Builder struct{}

// New creates a dropRecord builder.
func New() *Builder { return &Builder{} }

// Name returns the command name.
func (b *Builder) Name() string { return Name }

// ConfigType returns the command config type.
func (b *Builder) ConfigType() reflect.Type { return reflect.TypeOf(&Config{}) }

// Build creates the command chained to next.
func (b *Builder) Build(buildCtx *types.BuildContext, config interface{}, next types.Command) (types.Command, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, types.NewInvalidConfigError(config)
	}
	if cfg.Field == "" {
		return nil, fmt.Errorf("%s requires a field", Name)
	}
	values := make(map[string]bool, len(cfg.Values))
	for _, value := range cfg.Values {
		values[toolbox.AsString(value)] = true
	}
	return &command{field: cfg.Field, values: values, next: next}, nil
}

type command struct {
	field  string
	values map[string]bool
	next   types.Command
}

// Process consumes matching records without forwarding; the continuation
// signal stays true so upstream stages keep feeding.
func (c *command) Process(ctx context.Context, record *model.Record) (bool, error) {
	if value := record.FirstValue(c.field); value != nil && c.values[toolbox.AsString(value)] {
		return true, nil
	}
	return c.next.Process(ctx, record)
}

// Notify forwards the notification unchanged.
func (c *command) Notify(ctx context.Context, notification *model.Notification) error {
	return c.next.Notify(ctx, notification)
}
