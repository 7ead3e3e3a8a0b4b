package morph

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/morph/extension"
	"github.com/viant/morph/model"
	"github.com/viant/morph/model/types"
	"github.com/viant/morph/service/command/droprecord"
	"github.com/viant/morph/service/command/logrecord"
	"github.com/viant/morph/service/command/readlines"
	"github.com/viant/morph/service/command/setvalues"
	"github.com/viant/morph/service/command/uniquekey"
	"github.com/viant/morph/service/meta"
	"github.com/viant/morph/service/schema"
	"github.com/viant/structology/conv"
	"github.com/viant/x"
)

// Service represents the morph pipeline service: it owns the command
// registry, loads pipeline and schema definitions and compiles pipelines into
// runnable command chains.
type Service struct {
	fs               afs.Service
	metaService      *meta.Service
	schemaService    *schema.Service
	commands         *extension.Commands
	converter        *conv.Converter
	metaBaseURL      string
	metaFsOptions    []storage.Option
	extensionTypes   []*x.Type
	extensionCmds    []types.Builder
	uniquekeyOptions []uniquekey.Option
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.commands.Register(uniquekey.New(s.uniquekeyOptions...))
	s.commands.Register(setvalues.New())
	s.commands.Register(readlines.New(s.fs))
	s.commands.Register(logrecord.New())
	s.commands.Register(droprecord.New())
	for _, builder := range s.extensionCmds {
		s.commands.Register(builder)
	}
}

func (s *Service) ensureBaseSetup() {
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.metaService == nil {
		s.metaService = meta.New(s.fs, s.metaBaseURL, s.metaFsOptions...)
	}
	if s.schemaService == nil {
		s.schemaService = schema.New(s.metaService)
	}
	if s.commands == nil {
		s.commands = extension.NewCommands(s.extensionTypes...)
	}
	if s.converter == nil {
		options := conv.DefaultOptions()
		options.ClonePointerData = true
		options.IgnoreUnmapped = true
		s.converter = conv.NewConverter(options)
	}
}

// Commands returns the command registry.
func (s *Service) Commands() *extension.Commands {
	return s.commands
}

// RegisterCommands registers additional command builders.
func (s *Service) RegisterCommands(builders ...types.Builder) {
	for _, builder := range builders {
		s.commands.Register(builder)
	}
}

// Load loads, initialises and validates a pipeline definition from the
// specified URL.
func (s *Service) Load(ctx context.Context, URL string) (*model.Pipeline, error) {
	pipeline := &model.Pipeline{}
	if err := s.metaService.Load(ctx, URL, pipeline); err != nil {
		return nil, fmt.Errorf("failed to load pipeline from %s: %w", URL, err)
	}
	pipeline.Source = &model.Source{URL: URL}
	pipeline.Init()
	if issues := pipeline.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	for _, stage := range pipeline.Stages {
		if s.commands.Lookup(stage.Command) == nil {
			return nil, types.NewCommandNotFoundError(stage.Command)
		}
	}
	return pipeline, nil
}

// Compile resolves the pipeline's schema and builds its command chain
// back-to-front, terminated by sink (types.Sink() when nil). The returned
// runtime owns the chain.
func (s *Service) Compile(ctx context.Context, pipeline *model.Pipeline, sink types.Command) (*Runtime, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("pipeline cannot be nil")
	}
	pipeline.Init()
	if issues := pipeline.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	buildCtx := &types.BuildContext{Pipeline: pipeline.Name}
	if pipeline.Schema != "" {
		aSchema, err := s.schemaService.Load(ctx, pipeline.Schema)
		if err != nil {
			return nil, err
		}
		buildCtx.UniqueKeyField = aSchema.UniqueKeyField()
	}
	if sink == nil {
		sink = types.Sink()
	}
	next := sink
	for i := len(pipeline.Stages) - 1; i >= 0; i-- {
		stage := pipeline.Stages[i]
		builder := s.commands.Lookup(stage.Command)
		if builder == nil {
			return nil, types.NewCommandNotFoundError(stage.Command)
		}
		config, err := s.stageConfig(builder, stage)
		if err != nil {
			return nil, err
		}
		cmd, err := builder.Build(buildCtx, config, next)
		if err != nil {
			return nil, fmt.Errorf("failed to build stage %s: %w", stage.ID, err)
		}
		next = cmd
	}
	return &Runtime{pipeline: pipeline, chain: next}, nil
}

// stageConfig binds stage settings to the builder's typed config.
func (s *Service) stageConfig(builder types.Builder, stage *model.Stage) (interface{}, error) {
	configType := builder.ConfigType()
	if configType == nil {
		return nil, nil
	}
	if configType.Kind() == reflect.Ptr {
		configType = configType.Elem()
	}
	config := reflect.New(configType).Interface()
	if len(stage.Settings) == 0 {
		return config, nil
	}
	if err := s.converter.Convert(stage.Settings, config); err != nil {
		return nil, fmt.Errorf("failed to bind settings for stage %s: %w", stage.ID, err)
	}
	return config, nil
}

// New creates a morph service.
func New(options ...Option) *Service {
	s := &Service{}
	s.init(options)
	return s
}
