// Package meta loads YAML documents (engine configuration, scenarios) from
// any afs supported location, expanding ${env.KEY} expressions first.
package meta

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
	lookup  func(string) string
}

// New creates a meta service resolving relative locations against baseURL
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// WithLookup overrides the environment lookup used for ${env.KEY}
func (s *Service) WithLookup(lookup func(string) string) *Service {
	s.lookup = lookup
	return s
}

// URL resolves location against the base URL
func (s *Service) URL(location string) string {
	if s.baseURL == "" || !url.IsRelative(location) {
		return location
	}
	return url.Join(s.baseURL, location)
}

// Download returns the raw content at location
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return data, nil
}

// Load downloads location and decodes it into target
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	if err = s.Decode(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.URL(location), err)
	}
	return nil
}

// Decode expands env expressions and unmarshals YAML into target
func (s *Service) Decode(data []byte, target interface{}) error {
	expanded := expandEnv(string(data), s.lookup)
	return yaml.Unmarshal([]byte(expanded), target)
}
