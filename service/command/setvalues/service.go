// Package setvalues implements the setValues command. It stores configured
// values into record fields; string values may interpolate @{field}
// references resolved against the record being processed.
package setvalues

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
	"github.com/viant/parsly"
	"github.com/viant/toolbox"
)

// Name is the registry name of the command.
const Name = "setValues"

// Config represents command settings.
type Config struct {
	// Fields maps field names to values; string values are templates that may
	// reference other fields as @{name} (first value, current record state).
	Fields map[string]interface{} `json:"fields" yaml:"fields"`

	// Append retains prior field values instead of replacing them.
	Append bool `json:"append,omitempty" yaml:"append,omitempty"`
}

// Builder builds setValues commands.
type Builder struct{}

// New creates a setValues builder.
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
	return &command{fields: cfg.Fields, append: cfg.Append, next: next}, nil
}

type command struct {
	fields map[string]interface{}
	append bool
	next   types.Command
}

// Process stores the configured values and forwards the record.
func (c *command) Process(ctx context.Context, record *model.Record) (bool, error) {
	for name, value := range c.fields {
		if template, ok := value.(string); ok {
			value = expand(record, template)
		}
		if c.append {
			record.Put(name, value)
			continue
		}
		record.Replace(name, value)
	}
	return c.next.Process(ctx, record)
}

// Notify forwards the notification unchanged.
func (c *command) Notify(ctx context.Context, notification *model.Notification) error {
	return c.next.Notify(ctx, notification)
}

// expand substitutes @{field} references with the field's first value;
// references to absent fields expand to an empty string, malformed references
// stay literal.
func expand(record *model.Record, template string) string {
	if !strings.Contains(template, "@{") {
		return template
	}
	cursor := parsly.NewCursor("", []byte(template), 0)
	var b strings.Builder
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAny(fieldRefToken, textToken)
		text := matched.Text(cursor)
		if matched.Code == fieldRefToken.Code {
			name := text[2 : len(text)-1]
			if value := record.FirstValue(name); value != nil {
				b.WriteString(toolbox.AsString(value))
			}
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}
