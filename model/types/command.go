package types

import (
	"context"
	"reflect"

	"github.com/viant/morph/model"
)

// Command is a single stage in a record pipeline. Stages form a chain; every
// command forwards to its next stage after applying its own transformation.
//
// Process returns the downstream continuation signal: true to keep the
// pipeline going, false when a downstream stage consumed or filtered the
// record. A non-nil error is terminal for the run.
//
// Notify delivers a lifecycle notification; commands act on the markers they
// understand and always forward the notification unchanged.
type Command interface {
	Process(ctx context.Context, record *model.Record) (bool, error)
	Notify(ctx context.Context, notification *model.Notification) error
}

// BuildContext carries pipeline-level facts resolved once at compile time.
type BuildContext struct {
	// Pipeline is the pipeline name the command is compiled into.
	Pipeline string

	// UniqueKeyField is the unique-key field name resolved from the index
	// schema; empty when the schema defines none.
	UniqueKeyField string
}

// Builder constructs a command instance wired to its next stage.
type Builder interface {
	// Name returns the registry name of the command.
	Name() string

	// ConfigType returns the pointer type stage settings bind to.
	ConfigType() reflect.Type

	// Build creates the command from its typed config, chained to next.
	Build(buildCtx *BuildContext, config interface{}, next Command) (Command, error)
}

// sink accepts every record and notification; it terminates a chain.
type sink struct{}

func (s sink) Process(ctx context.Context, record *model.Record) (bool, error) { return true, nil }

func (s sink) Notify(ctx context.Context, notification *model.Notification) error { return nil }

// Sink returns a terminal command that accepts everything.
func Sink() Command { return sink{} }
