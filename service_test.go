package morph_test

import (
	"context"
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	_ "github.com/viant/afs/embed"
	"github.com/viant/morph"
	"github.com/viant/morph/model"
)

//go:embed testdata/*
var embedFS embed.FS

type capture struct {
	records       []*model.Record
	notifications []*model.Notification
}

func (c *capture) Process(ctx context.Context, record *model.Record) (bool, error) {
	c.records = append(c.records, record)
	return true, nil
}

func (c *capture) Notify(ctx context.Context, notification *model.Notification) error {
	c.notifications = append(c.notifications, notification)
	return nil
}

func newService() *morph.Service {
	return morph.New(
		morph.WithMetaFsOptions(&embedFS),
		morph.WithMetaBaseURL("embed:///testdata"),
	)
}

func pathRecord(path string) *model.Record {
	record := model.NewRecord()
	record.Put("path", path)
	return record
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()
	srv := newService()

	pipeline, err := srv.Load(ctx, "pipeline.yaml")
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "ingest", pipeline.Name)
	assert.Equal(t, 3, len(pipeline.Stages))
	assert.Equal(t, "ingest/0:setValues", pipeline.Stages[0].ID)

	_, err = srv.Load(ctx, "missing.yaml")
	assert.NotNil(t, err)
}

func TestService_Compile_endToEnd(t *testing.T) {
	ctx := context.Background()
	srv := newService()

	pipeline, err := srv.Load(ctx, "pipeline.yaml")
	if !assert.Nil(t, err) {
		return
	}
	sink := &capture{}
	rt, err := srv.Compile(ctx, pipeline, sink)
	if !assert.Nil(t, err) {
		return
	}

	record := pathRecord("/a/b.csv")
	ok, err := rt.Process(ctx, record)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/a/b.csv#0", record.FirstValue("id"))
	assert.Equal(t, "file:/a/b.csv", record.FirstValue("source"))

	record = pathRecord("/a/b.csv")
	_, err = rt.Process(ctx, record)
	assert.Nil(t, err)
	assert.Equal(t, "/a/b.csv#1", record.FirstValue("id"))

	// a start-session notification resets the sequence
	assert.Nil(t, rt.StartSession(ctx))
	record = pathRecord("/a/b.csv")
	_, err = rt.Process(ctx, record)
	assert.Nil(t, err)
	assert.Equal(t, "/a/b.csv#0", record.FirstValue("id"))

	// dropped records never reach the key assignment stage or the sink
	dropped := pathRecord("/a/b.csv")
	dropped.Put("status", "deleted")
	ok, err = rt.Process(ctx, dropped)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.False(t, dropped.Has("id"))

	assert.Equal(t, 3, len(sink.records))
	assert.Equal(t, 1, len(sink.notifications), "notifications traverse the whole chain")
}

func TestService_Compile_noUniqueKeySchema(t *testing.T) {
	ctx := context.Background()
	srv := newService()

	pipeline, err := srv.Load(ctx, "nokey-pipeline.yaml")
	if !assert.Nil(t, err) {
		return
	}
	sink := &capture{}
	rt, err := srv.Compile(ctx, pipeline, sink)
	if !assert.Nil(t, err) {
		return
	}

	record := pathRecord("/a/b.csv")
	ok, err := rt.Process(ctx, record)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"path"}, record.Fields(), "no unique key field, nothing is written")
}

func TestService_Compile_unknownCommand(t *testing.T) {
	ctx := context.Background()
	srv := newService()
	pipeline := &model.Pipeline{
		Name:   "bad",
		Stages: []*model.Stage{{Command: "noSuchCommand"}},
	}
	_, err := srv.Compile(ctx, pipeline, nil)
	assert.NotNil(t, err)
}
