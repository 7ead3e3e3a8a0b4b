// Package readlines implements the readLines command. It expands a record
// holding a source document URL into one child record per line, forwarding
// each child downstream. The source record itself is consumed.
package readlines

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
	"github.com/viant/toolbox"
)

// Name is the registry name of the command.
const Name = "readLines"

const (
	defaultURLField  = "path"
	defaultBodyField = "message"
)

// Config represents command settings.
type Config struct {
	// Field names the record field holding the source document URL.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// BodyField names the field each emitted line is stored in.
	BodyField string `json:"bodyField,omitempty" yaml:"bodyField,omitempty"`

	// SkipComments drops lines starting with '#'.
	SkipComments bool `json:"skipComments,omitempty" yaml:"skipComments,omitempty"`
}

// Builder builds readLines commands.
type Builder struct {
	fs afs.Service
}

// New creates a readLines builder backed by the supplied file service.
func New(fs afs.Service) *Builder {
	if fs == nil {
		fs = afs.New()
	}
	return &Builder{fs: fs}
}

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
	cmd := &command{
		fs:           b.fs,
		urlField:     cfg.Field,
		bodyField:    cfg.BodyField,
		skipComments: cfg.SkipComments,
		next:         next,
	}
	if cmd.urlField == "" {
		cmd.urlField = defaultURLField
	}
	if cmd.bodyField == "" {
		cmd.bodyField = defaultBodyField
	}
	return cmd, nil
}

type command struct {
	fs           afs.Service
	urlField     string
	bodyField    string
	skipComments bool
	next         types.Command
}

// Process downloads the source document and forwards one child record per
// non-empty line. Processing stops early when a downstream stage signals
// false, returning false to the caller.
func (c *command) Process(ctx context.Context, record *model.Record) (bool, error) {
	source := record.FirstValue(c.urlField)
	if source == nil {
		return false, fmt.Errorf("record field %s must hold a source URL: %v", c.urlField, record)
	}
	URL := toolbox.AsString(source)
	data, err := c.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if c.skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		child := record.Clone()
		child.Replace(c.bodyField, line)
		ok, err := c.next.Process(ctx, child)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Notify forwards the notification unchanged.
func (c *command) Notify(ctx context.Context, notification *model.Notification) error {
	return c.next.Notify(ctx, notification)
}
