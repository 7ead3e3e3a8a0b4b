package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads YAML documents addressed by URL. Relative URLs are resolved
// against the configured base URL; ${env.KEY} expressions in the document are
// expanded before decoding.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// New creates a meta service.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// Load downloads, expands and decodes the document at URL into target.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	location := s.resolve(URL)
	data, err := s.fs.DownloadWithURL(ctx, location, s.options...)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", location, err)
	}
	expanded := expandEnvExpr(string(data))
	if err = yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", location, err)
	}
	return nil
}

func (s *Service) resolve(URL string) string {
	if s.baseURL == "" || strings.Contains(URL, "://") || strings.HasPrefix(URL, "/") {
		return URL
	}
	return url.Join(s.baseURL, URL)
}
