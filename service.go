package ssmdoc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/ssmdoc/model"
	"github.com/viant/ssmdoc/model/graph"
	"github.com/viant/ssmdoc/service/builder"
	"github.com/viant/ssmdoc/service/compiler"
	"github.com/viant/ssmdoc/service/dao/document"
	"github.com/viant/ssmdoc/service/meta"
	"github.com/viant/ssmdoc/service/publisher"
	"github.com/viant/ssmdoc/service/registry"
	fsregistry "github.com/viant/ssmdoc/service/registry/fs"
	"github.com/viant/ssmdoc/service/registry/memory"
	docsync "github.com/viant/ssmdoc/service/sync"
	"github.com/viant/ssmdoc/tracing"
)

// Version is reported as the tracing service version
const Version = "0.1.0"

// Report summarises a Run
type Report struct {
	Artifacts   []*builder.Artifact
	Documents   []*docsync.DocumentChange
	Permissions []*docsync.PermissionChange
	Assets      []*publisher.Asset
}

type Service struct {
	config        *Config
	metaService   *meta.Service
	metaBaseURL   string
	metaFsOptions []storage.Option
	registry      registry.Service
	logger        *slog.Logger
	tracingErr    error

	documents *document.Service
	compiler  *compiler.Service
	builder   *builder.Service
	publisher *publisher.Service
	sync      *docsync.Service
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.tracingErr != nil {
		return fmt.Errorf("failed to initialise tracing: %w", s.tracingErr)
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	trailing, err := s.config.TrailingPolicy()
	if err != nil {
		return err
	}
	s.documents = document.New(document.WithMetaService(s.metaService))
	s.compiler = compiler.New(compiler.WithTrailingPolicy(trailing), compiler.WithLogger(s.logger))
	s.builder = builder.New(
		builder.WithMetaService(s.metaService),
		builder.WithDocumentService(s.documents),
		builder.WithCompiler(s.compiler),
		builder.WithOutputURL(s.config.Build.OutputURL),
		builder.WithWorkers(s.config.Build.Workers),
		builder.WithGraph(s.config.Build.Graph),
		builder.WithLogger(s.logger))
	s.publisher = publisher.New(s.metaService.FS(),
		publisher.WithStorageOptions(s.metaService.Options()...),
		publisher.WithLogger(s.logger))
	s.sync = docsync.New(s.registry,
		docsync.WithMetaService(s.metaService),
		docsync.WithLogger(s.logger))
	return nil
}

func (s *Service) ensureBaseSetup() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.registry == nil {
		s.registry = s.newRegistry()
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init("ssmdoc", Version, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
	return nil
}

func (s *Service) newRegistry() registry.Service {
	if s.config.Registry.URL == "" {
		return memory.New()
	}
	return fsregistry.New(s.metaService.FS(), s.metaService.URL(s.config.Registry.URL), s.metaService.Options()...)
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// MetaService returns the meta service
func (s *Service) MetaService() *meta.Service {
	return s.metaService
}

// Registry returns the document registry
func (s *Service) Registry() registry.Service {
	return s.registry
}

// Builder returns the document builder
func (s *Service) Builder() *builder.Service {
	return s.builder
}

// LoadDocument loads an automation document
func (s *Service) LoadDocument(ctx context.Context, URL string) (*model.Document, error) {
	return s.documents.Load(ctx, URL)
}

// Compile compiles a document into its graph
func (s *Service) Compile(ctx context.Context, document *model.Document) (*graph.Graph, error) {
	return s.compiler.Compile(ctx, document)
}

// Graph loads a document and returns its DOT text
func (s *Service) Graph(ctx context.Context, URL string) (string, error) {
	document, err := s.documents.Load(ctx, URL)
	if err != nil {
		return "", err
	}
	return s.compiler.Render(ctx, document)
}

// Build builds the documents listed in the configured build config
func (s *Service) Build(ctx context.Context) ([]*builder.Artifact, error) {
	config, err := s.builder.LoadConfig(ctx, s.config.Build.ConfigURL)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(ctx, config)
}

// Sync registers the built documents
func (s *Service) Sync(ctx context.Context) ([]*docsync.DocumentChange, error) {
	return s.sync.SyncDocuments(ctx, s.config.Build.OutputURL)
}

// SyncPermissions applies the configured document sharing
func (s *Service) SyncPermissions(ctx context.Context) ([]*docsync.PermissionChange, error) {
	config, err := s.sync.LoadPermissions(ctx, s.config.Permissions.ConfigURL)
	if err != nil {
		return nil, err
	}
	return s.sync.SyncPermissions(ctx, config.Documents)
}

// Publish copies the build artifacts into the configured bucket
func (s *Service) Publish(ctx context.Context) ([]*publisher.Asset, error) {
	return s.publisher.Publish(ctx, s.builder.OutputURL(), s.config.Publish.BucketURL)
}

// Run builds, registers, shares and publishes the documents, stopping at the first failing stage
func (s *Service) Run(ctx context.Context) (ret *Report, err error) {
	ctx, span := tracing.StartSpan(ctx, "ssmdoc.run")
	defer func() { tracing.EndSpan(span, err) }()
	ret = &Report{}
	if ret.Artifacts, err = s.Build(ctx); err != nil {
		return ret, fmt.Errorf("build: %w", err)
	}
	if ret.Documents, err = s.Sync(ctx); err != nil {
		return ret, fmt.Errorf("sync: %w", err)
	}
	if ret.Permissions, err = s.SyncPermissions(ctx); err != nil {
		return ret, fmt.Errorf("permissions: %w", err)
	}
	if ret.Assets, err = s.Publish(ctx); err != nil {
		return ret, fmt.Errorf("publish: %w", err)
	}
	return ret, nil
}

// New creates a Service
func New(options ...Option) (*Service, error) {
	ret := &Service{logger: slog.Default()}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
