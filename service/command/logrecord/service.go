// Package logrecord implements the logRecord command, a pass-through stage
// that logs every record and notification flowing through it.
package logrecord

import (
	"context"
	"log"
	"reflect"

	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
)

// Name is the registry name of the command.
const Name = "logRecord"

// Config represents command settings.
type Config struct {
	// Prefix is prepended to every log line.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// Builder builds logRecord commands.
type Builder struct{}

// New creates a logRecord builder.
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
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = Name
	}
	return &command{prefix: prefix, next: next}, nil
}

type command struct {
	prefix string
	next   types.Command
}

func (c *command) Process(ctx context.Context, record *model.Record) (bool, error) {
	log.Printf("%s: record %v", c.prefix, record)
	return c.next.Process(ctx, record)
}

func (c *command) Notify(ctx context.Context, notification *model.Notification) error {
	log.Printf("%s: notification %v", c.prefix, notification.Events)
	return c.next.Notify(ctx, notification)
}
