package morph

import (
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/morph/model/types"
	"github.com/viant/morph/service/command/uniquekey"
	"github.com/viant/morph/service/meta"
	"github.com/viant/morph/service/schema"
	"github.com/viant/x"
)

// Option customises the morph service.
type Option func(s *Service)

// WithFileService sets the file service shared by meta loading and commands.
func WithFileService(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}

// WithMetaService sets the meta service.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) { s.metaService = service }
}

// WithSchemaService sets the schema service.
func WithSchemaService(service *schema.Service) Option {
	return func(s *Service) { s.schemaService = service }
}

// WithMetaBaseURL sets the base URL pipeline and schema URLs resolve against.
func WithMetaBaseURL(baseURL string) Option {
	return func(s *Service) { s.metaBaseURL = baseURL }
}

// WithMetaFsOptions sets storage options used when downloading definitions
// (for example an embedded file system).
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) { s.metaFsOptions = options }
}

// WithConfigTypes pre-registers config types in the command registry.
func WithConfigTypes(goTypes ...*x.Type) Option {
	return func(s *Service) { s.extensionTypes = goTypes }
}

// WithCommands registers additional command builders.
func WithCommands(builders ...types.Builder) Option {
	return func(s *Service) { s.extensionCmds = append(s.extensionCmds, builders...) }
}

// WithUniqueKeyOptions customises the built-in sanitizeUniqueKey builder,
// typically to inject a deterministic random source in tests.
func WithUniqueKeyOptions(options ...uniquekey.Option) Option {
	return func(s *Service) { s.uniquekeyOptions = append(s.uniquekeyOptions, options...) }
}
