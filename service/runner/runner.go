// Package runner drives queued records through a compiled command chain. The
// runner delivers records and notifications strictly sequentially; commands
// therefore never require internal synchronisation.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/morph/internal/idgen"
	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
	"github.com/viant/morph/service/messaging"
	"github.com/viant/morph/tracing"
)

// Runner feeds records from a queue into a command chain, one at a time.
type Runner struct {
	pipeline string
	id       string
	chain    types.Command
	queue    messaging.Queue[model.Record]
}

// New creates a runner for the supplied chain and input queue.
func New(pipeline string, chain types.Command, queue messaging.Queue[model.Record]) *Runner {
	return &Runner{
		pipeline: pipeline,
		id:       pipeline + "/" + idgen.New(),
		chain:    chain,
		queue:    queue,
	}
}

// ID returns the unique run identifier.
func (r *Runner) ID() string { return r.id }

// StartSession broadcasts a startSession notification through the chain,
// resetting session-scoped command state.
func (r *Runner) StartSession(ctx context.Context) error {
	return r.chain.Notify(ctx, model.NewNotification(model.StartSession))
}

// Notify broadcasts a notification through the chain.
func (r *Runner) Notify(ctx context.Context, notification *model.Notification) error {
	return r.chain.Notify(ctx, notification)
}

// Run consumes records until the context is cancelled or a command reports a
// terminal error. A false continuation from the chain only means the record
// was consumed or filtered downstream; the run keeps going.
func (r *Runner) Run(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, fmt.Sprintf("runner.Run %s", r.pipeline), "CONSUMER")
	defer tracing.EndSpan(span, err)
	span.WithAttributes(map[string]string{"run.id": r.id})

	for {
		msg, cErr := r.queue.Consume(ctx)
		if cErr != nil {
			if errors.Is(cErr, context.Canceled) || errors.Is(cErr, context.DeadlineExceeded) {
				return nil
			}
			// Transient queue error; back off a bit.
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if msg == nil {
			continue
		}
		if _, err = r.chain.Process(ctx, msg.T()); err != nil {
			_ = msg.Nack(err)
			err = fmt.Errorf("run %s: %w", r.id, err)
			return err
		}
		if aErr := msg.Ack(); aErr != nil {
			err = fmt.Errorf("run %s: failed to ack: %w", r.id, aErr)
			return err
		}
	}
}
