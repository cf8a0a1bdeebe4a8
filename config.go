package ssmdoc

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/ssmdoc/service/compiler"
	"github.com/viant/ssmdoc/service/meta"
)

// Config is a serialisable representation of the build tool configuration.
// Loading a partial config keeps the defaults of the omitted fields.
type Config struct {
	Build       BuildConfig       `json:"build" yaml:"build"`
	Graph       GraphConfig       `json:"graph" yaml:"graph"`
	Permissions PermissionsConfig `json:"permissions" yaml:"permissions"`
	Publish     PublishConfig     `json:"publish" yaml:"publish"`
	Registry    RegistryConfig    `json:"registry" yaml:"registry"`
	Tracing     TracingConfig     `json:"tracing" yaml:"tracing"`
}

type BuildConfig struct {
	ConfigURL string `json:"configURL" yaml:"configURL"`
	OutputURL string `json:"outputURL" yaml:"outputURL"`
	Workers   int    `json:"workers" yaml:"workers"`
	Graph     bool   `json:"graph" yaml:"graph"`
}

type GraphConfig struct {
	// Trailing is the trailing edge policy: drop or end
	Trailing string `json:"trailing" yaml:"trailing"`
}

type PermissionsConfig struct {
	ConfigURL string `json:"configURL" yaml:"configURL"`
}

type PublishConfig struct {
	BucketURL string `json:"bucketURL" yaml:"bucketURL"`
}

type RegistryConfig struct {
	// URL is the location of a persistent registry; an empty URL keeps the registry in memory
	URL string `json:"URL" yaml:"URL"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config with the default locations of the build tool
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			ConfigURL: "build_documents_config.json",
			OutputURL: "Output",
			Workers:   4,
			Graph:     true,
		},
		Graph:       GraphConfig{Trailing: string(compiler.TrailingDrop)},
		Permissions: PermissionsConfig{ConfigURL: "document_permissions.json"},
		Publish:     PublishConfig{BucketURL: "mem://localhost/ssm-automation"},
	}
}

// LoadConfig loads a JSON or YAML config over the defaults
func LoadConfig(ctx context.Context, metaService *meta.Service, URL string) (*Config, error) {
	ret := DefaultConfig()
	if err := metaService.Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return ret, ret.Validate()
}

// TrailingPolicy returns the configured trailing edge policy
func (c *Config) TrailingPolicy() (compiler.TrailingPolicy, error) {
	return compiler.ParseTrailingPolicy(c.Graph.Trailing)
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Build.ConfigURL == "" {
		errs = append(errs, fmt.Errorf("build.configURL was empty"))
	}
	if c.Build.OutputURL == "" {
		errs = append(errs, fmt.Errorf("build.outputURL was empty"))
	}
	if c.Build.Workers <= 0 {
		errs = append(errs, fmt.Errorf("build.workers must be > 0"))
	}
	if _, err := c.TrailingPolicy(); err != nil {
		errs = append(errs, fmt.Errorf("graph.trailing: %w", err))
	}
	return errors.Join(errs...)
}
