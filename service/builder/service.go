package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/ssmdoc/internal/idgen"
	"github.com/viant/ssmdoc/internal/logattr"
	"github.com/viant/ssmdoc/internal/yml"
	"github.com/viant/ssmdoc/model"
	"github.com/viant/ssmdoc/model/graph"
	"github.com/viant/ssmdoc/service/compiler"
	"github.com/viant/ssmdoc/service/dao/document"
	"github.com/viant/ssmdoc/service/meta"
	"github.com/viant/ssmdoc/tracing"
	"gopkg.in/yaml.v3"
)

const stepsNodeName = "mainSteps"

// Artifact describes a built document
type Artifact struct {
	Name        string
	DocumentURL string
	GraphURL    string
	Document    *model.Document
	Graph       *graph.Graph
}

// Service assembles documents from their folder sources and writes build artifacts
type Service struct {
	metaService *meta.Service
	documents   *document.Service
	compiler    *compiler.Service
	outputURL   string
	workers     int
	graph       bool
	logger      *slog.Logger
}

// LoadConfig loads a build config
func (s *Service) LoadConfig(ctx context.Context, URL string) (*Config, error) {
	ret := &Config{}
	if err := s.metaService.Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load build config: %w", err)
	}
	return ret, ret.Validate()
}

// LoadFolderConfig loads <folder>/config.json; a missing config yields nil
func (s *Service) LoadFolderConfig(ctx context.Context, folder string) (*FolderConfig, error) {
	URL := sourceURL(folder, FolderConfigName)
	exists, err := s.metaService.Exists(ctx, URL)
	if err != nil || !exists {
		return nil, err
	}
	ret := &FolderConfig{}
	if err = s.metaService.Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Build builds every configured document using a bounded worker pool.
// Artifacts follow the config order; failed documents are skipped and their errors joined.
func (s *Service) Build(ctx context.Context, config *Config) (ret []*Artifact, err error) {
	if err = config.Validate(); err != nil {
		return nil, err
	}
	ctx, span := tracing.StartSpan(ctx, "builder.build")
	span.WithCount("documents", len(config.Documents))
	defer func() { tracing.EndSpan(span, err) }()

	runID := idgen.New()
	span.WithAttributes(map[string]string{"run.id": runID})
	logger := s.logger.With(logattr.RunID(runID))

	artifacts := make([]*Artifact, len(config.Documents))
	errs := make([]error, len(config.Documents))
	indexes := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < min(s.workers, len(config.Documents)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexes {
				artifacts[index], errs[index] = s.build(ctx, logger, config.Documents[index])
			}
		}()
	}
	var cancelErr error
dispatch:
	for i := range config.Documents {
		select {
		case indexes <- i:
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break dispatch
		}
	}
	close(indexes)
	wg.Wait()

	for _, artifact := range artifacts {
		if artifact != nil {
			ret = append(ret, artifact)
		}
	}
	return ret, errors.Join(append(errs, cancelErr)...)
}

// BuildDocument assembles a single document and writes its artifacts
func (s *Service) BuildDocument(ctx context.Context, source *Source) (*Artifact, error) {
	return s.build(ctx, s.logger, source)
}

func (s *Service) build(ctx context.Context, logger *slog.Logger, source *Source) (ret *Artifact, err error) {
	ctx, span := tracing.StartSpan(ctx, "builder.document")
	span.WithAttributes(map[string]string{"document": source.Name})
	defer func() { tracing.EndSpan(span, err) }()
	logger = logger.With(logattr.Document(source.Name))

	root, err := s.assemble(ctx, logger, source)
	if err != nil {
		logger.Error("failed to assemble document", logattr.Error(err))
		return nil, fmt.Errorf("failed to build %s: %w", source.Name, err)
	}
	ret = &Artifact{Name: source.Name, DocumentURL: s.artifactURL(source.Name, ".json")}
	data, err := root.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", source.Name, err)
	}
	if err = s.upload(ctx, ret.DocumentURL, data); err != nil {
		return nil, err
	}
	logger.Info("built document", logattr.URL(ret.DocumentURL))

	if ret.Document, err = s.documents.Parse(ret.DocumentURL, root); err != nil {
		return nil, err
	}
	if !s.graph {
		return ret, nil
	}
	if ret.Graph, err = s.compiler.Compile(ctx, ret.Document); err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", source.Name, err)
	}
	ret.GraphURL = s.artifactURL(source.Name, ".dot")
	if err = s.upload(ctx, ret.GraphURL, []byte(ret.Graph.Render())); err != nil {
		return nil, err
	}
	logger.Info("built graph", logattr.URL(ret.GraphURL))
	return ret, nil
}

// Assemble loads <folder>/<name>.json and splices the inserts of the folder config into it
func (s *Service) Assemble(ctx context.Context, source *Source) (*yml.Node, error) {
	return s.assemble(ctx, s.logger.With(logattr.Document(source.Name)), source)
}

func (s *Service) assemble(ctx context.Context, logger *slog.Logger, source *Source) (*yml.Node, error) {
	data, err := s.metaService.Download(ctx, sourceURL(source.Folder, source.Name+".json"))
	if err != nil {
		return nil, err
	}
	root, err := yml.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source.Name, err)
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document %s should be a JSON object", source.Name)
	}
	config, err := s.LoadFolderConfig(ctx, source.Folder)
	if err != nil {
		return nil, fmt.Errorf("failed to load folder config: %w", err)
	}
	if config == nil {
		return root, nil
	}
	for _, insert := range config.Build {
		if insert == nil {
			continue
		}
		if err = insert.Validate(); err != nil {
			return nil, err
		}
		steps := matchSteps(root, stepsNodeName, insert.StepName)
		if len(steps) == 0 {
			logger.Warn("step was not found", logattr.Step(insert.StepName))
			continue
		}
		if err = s.splice(ctx, source.Folder, insert, steps); err != nil {
			return nil, err
		}
		logger.Debug("spliced step", logattr.Step(insert.StepName), slog.String("type", insert.Type))
	}
	return root, nil
}

func (s *Service) splice(ctx context.Context, folder string, insert *Insert, steps []*yml.Node) error {
	content, err := s.metaService.Download(ctx, sourceURL(folder, insert.File))
	if err != nil {
		return err
	}
	switch insert.Type {
	case InsertCommand:
		lines := ScriptLines(content)
		for _, step := range steps {
			spliceCommands(step, lines)
		}
	case InsertCloudFormation:
		body, err := ConvertTemplate(content)
		if err != nil {
			return fmt.Errorf("step %s: %w", insert.StepName, err)
		}
		for _, step := range steps {
			spliceTemplate(step, body)
		}
	}
	return nil
}

func (s *Service) upload(ctx context.Context, URL string, data []byte) error {
	err := s.metaService.FS().Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data), s.metaService.Options()...)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", URL, err)
	}
	return nil
}

func (s *Service) artifactURL(name, ext string) string {
	return s.metaService.URL(sourceURL(s.outputURL, name+ext))
}

// OutputURL returns the resolved artifact location
func (s *Service) OutputURL() string {
	return s.metaService.URL(s.outputURL)
}

func sourceURL(folder, name string) string {
	if folder == "" {
		return name
	}
	return url.Join(folder, name)
}

// New creates a builder service
func New(options ...Option) *Service {
	ret := &Service{
		outputURL: "Output",
		workers:   4,
		graph:     true,
		logger:    slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.metaService == nil {
		ret.metaService = meta.New(afs.New(), "")
	}
	if ret.documents == nil {
		ret.documents = document.New(document.WithMetaService(ret.metaService))
	}
	if ret.compiler == nil {
		ret.compiler = compiler.New(compiler.WithLogger(ret.logger))
	}
	return ret
}
