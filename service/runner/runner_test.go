package runner_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
	"github.com/viant/morph/service/command/uniquekey"
	"github.com/viant/morph/service/messaging/memory"
	"github.com/viant/morph/service/runner"
)

type capture struct {
	records []*model.Record
}

func (c *capture) Process(ctx context.Context, record *model.Record) (bool, error) {
	c.records = append(c.records, record)
	return true, nil
}

func (c *capture) Notify(ctx context.Context, notification *model.Notification) error {
	return nil
}

func pathRecord(path string) *model.Record {
	record := model.NewRecord()
	record.Put("path", path)
	return record
}

func TestRunner_Run(t *testing.T) {
	sink := &capture{}
	chain, err := uniquekey.New().Build(
		&types.BuildContext{Pipeline: "ingest", UniqueKeyField: "id"},
		&uniquekey.Config{BaseIDField: "path"},
		sink)
	assert.Nil(t, err)

	queue := memory.NewQueue[model.Record](memory.DefaultConfig())
	ctx := context.Background()
	assert.Nil(t, queue.Publish(ctx, pathRecord("/a/b.csv")))
	assert.Nil(t, queue.Publish(ctx, pathRecord("/a/b.csv")))

	aRunner := runner.New("ingest", chain, queue)
	assert.Nil(t, aRunner.StartSession(ctx))

	runCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	assert.Nil(t, aRunner.Run(runCtx))

	if !assert.Equal(t, 2, len(sink.records)) {
		return
	}
	assert.Equal(t, "/a/b.csv#0", sink.records[0].FirstValue("id"))
	assert.Equal(t, "/a/b.csv#1", sink.records[1].FirstValue("id"))
	assert.Equal(t, 0, queue.Size())
}

func TestRunner_Run_terminalError(t *testing.T) {
	sink := &capture{}
	chain, err := uniquekey.New().Build(
		&types.BuildContext{Pipeline: "ingest", UniqueKeyField: "id"},
		&uniquekey.Config{BaseIDField: "path"},
		sink)
	assert.Nil(t, err)

	queue := memory.NewQueue[model.Record](memory.Config{MaxRetries: 0, DeadLetter: true, QueueBuffer: 4})
	ctx := context.Background()
	// record without the base identifier field
	assert.Nil(t, queue.Publish(ctx, model.NewRecord()))

	aRunner := runner.New("ingest", chain, queue)
	runCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	err = aRunner.Run(runCtx)
	assert.NotNil(t, err, "missing base id is terminal")
	assert.Equal(t, 0, len(sink.records))
	assert.Equal(t, 1, len(queue.DeadLetters()))
}

func TestRunner_ID(t *testing.T) {
	queue := memory.NewQueue[model.Record](memory.DefaultConfig())
	aRunner := runner.New("ingest", types.Sink(), queue)
	assert.Contains(t, aRunner.ID(), "ingest/")
}
