package morph

import (
	"context"

	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
	"github.com/viant/morph/service/messaging"
	"github.com/viant/morph/service/runner"
)

// Runtime is a compiled pipeline: an immutable command chain plus the
// definition it was built from. A runtime is exclusively owned by one driver;
// calls must be delivered sequentially.
type Runtime struct {
	pipeline *model.Pipeline
	chain    types.Command
}

// Pipeline returns the pipeline definition.
func (r *Runtime) Pipeline() *model.Pipeline {
	return r.pipeline
}

// Process pushes a single record through the chain.
func (r *Runtime) Process(ctx context.Context, record *model.Record) (bool, error) {
	return r.chain.Process(ctx, record)
}

// Notify broadcasts a notification through the chain.
func (r *Runtime) Notify(ctx context.Context, notification *model.Notification) error {
	return r.chain.Notify(ctx, notification)
}

// StartSession broadcasts a startSession notification, resetting
// session-scoped command state.
func (r *Runtime) StartSession(ctx context.Context) error {
	return r.Notify(ctx, model.NewNotification(model.StartSession))
}

// NewRunner creates a runner feeding the chain from the supplied queue.
func (r *Runtime) NewRunner(queue messaging.Queue[model.Record]) *runner.Runner {
	return runner.New(r.pipeline.Name, r.chain, queue)
}
