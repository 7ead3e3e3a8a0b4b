// Package uniquekey implements the sanitizeUniqueKey command. It assigns each
// record a unique key built from a base identifier field (for example a file
// path) followed by a running count of the record number within the current
// session: $path#0, $path#1, ... $path#N. The count resets to zero whenever a
// startSession notification arrives. The name of the unique-key field is
// resolved from the index schema at compile time.
package uniquekey

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"reflect"
	"strconv"

	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
	"github.com/viant/toolbox"
)

// Name is the registry name of the command.
const Name = "sanitizeUniqueKey"

// randomSentinel selects the per-record random prefix mode when supplied as
// idPrefix; any other non-empty value is a literal fixed prefix.
const randomSentinel = "random"

const defaultBaseIDField = "id"

// Config represents command settings.
type Config struct {
	// BaseIDField is the record field the key is derived from when the record
	// does not yet carry a unique key.
	BaseIDField string `json:"baseIdField,omitempty" yaml:"baseIdField,omitempty"`

	// IDPrefix rewrites already-assigned keys, for load testing only; it
	// enables adding the same document many times with a different unique
	// key. The value "random" prepends a fresh random integer per record,
	// any other value is prepended literally.
	IDPrefix string `json:"idPrefix,omitempty" yaml:"idPrefix,omitempty"`
}

// Source yields non-negative pseudo random integers for the random prefix mode.
type Source interface {
	Int63() int64
}

// Option customises the builder.
type Option func(b *Builder)

// WithSource overrides the random source used in random prefix mode so tests
// can supply a deterministic generator.
func WithSource(source Source) Option {
	return func(b *Builder) { b.source = source }
}

// Builder builds sanitizeUniqueKey commands.
type Builder struct {
	source Source
}

// New creates a sanitizeUniqueKey builder.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
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
		baseIDField: cfg.BaseIDField,
		next:        next,
	}
	if cmd.baseIDField == "" {
		cmd.baseIDField = defaultBaseIDField
	}
	if buildCtx != nil {
		cmd.uniqueKeyField = buildCtx.UniqueKeyField
	}
	if cfg.IDPrefix == randomSentinel {
		cmd.random = b.source
		if cmd.random == nil {
			cmd.random = newSource()
		}
	} else {
		cmd.idPrefix = cfg.IDPrefix
	}
	return cmd, nil
}

// command holds the per-session sequence state. An instance is exclusively
// owned by one pipeline chain; the driver delivers calls sequentially so no
// synchronisation is required.
type command struct {
	baseIDField    string
	uniqueKeyField string
	idPrefix       string
	random         Source
	counter        uint64
	next           types.Command
}

// Process assigns the unique key and forwards the record.
func (c *command) Process(ctx context.Context, record *model.Record) (bool, error) {
	num := c.counter
	c.counter++
	if c.uniqueKeyField != "" && !record.Has(c.uniqueKeyField) {
		baseID := record.FirstValue(c.baseIDField)
		if baseID == nil {
			return false, fmt.Errorf("record field %s must not be empty as it seeds the unique key: %v", c.baseIDField, record)
		}
		record.Replace(c.uniqueKeyField, toolbox.AsString(baseID)+"#"+strconv.FormatUint(num, 10))
	}

	// for load testing only; the unique-key field is guaranteed to hold a
	// value here unless the schema defines none, in which case prefixing is
	// skipped rather than reading a nonexistent field.
	if c.uniqueKeyField != "" && record.Has(c.uniqueKeyField) {
		if c.random != nil {
			id := toolbox.AsString(record.FirstValue(c.uniqueKeyField))
			record.Replace(c.uniqueKeyField, strconv.FormatInt(c.random.Int63(), 10)+"#"+id)
		} else if c.idPrefix != "" {
			id := toolbox.AsString(record.FirstValue(c.uniqueKeyField))
			record.Replace(c.uniqueKeyField, c.idPrefix+id)
		}
	}
	return c.next.Process(ctx, record)
}

// Notify resets the session counter on startSession and forwards the
// notification unchanged.
func (c *command) Notify(ctx context.Context, notification *model.Notification) error {
	if notification.Contains(model.StartSession) {
		c.counter = 0
	}
	return c.next.Notify(ctx, notification)
}

// newSource seeds a pseudo random source from a cryptographically strong one,
// once per command.
func newSource() Source {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))
}
