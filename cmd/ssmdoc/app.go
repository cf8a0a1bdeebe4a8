package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/ssmdoc"
	"github.com/viant/ssmdoc/service/meta"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

type app struct {
	configURL string
	logLevel  string
	trailing  string
	baseURL   string
	registry  string
}

// defaultRegistryURL is used when neither the config nor a flag names a registry
const defaultRegistryURL = "Registry"

func (a *app) logger(w io.Writer) (*slog.Logger, error) {
	level, ok := logLevels[strings.ToLower(a.logLevel)]
	if !ok {
		return nil, fmt.Errorf("unsupported log level: %v", a.logLevel)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func (a *app) config(ctx context.Context) (*ssmdoc.Config, error) {
	config := ssmdoc.DefaultConfig()
	if a.configURL != "" {
		loaded, err := ssmdoc.LoadConfig(ctx, meta.New(afs.New(), ""), a.configURL)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if a.trailing != "" {
		config.Graph.Trailing = a.trailing
	}
	if a.registry != "" {
		config.Registry.URL = a.registry
	}
	if config.Registry.URL == "" {
		config.Registry.URL = defaultRegistryURL
	}
	return config, config.Validate()
}

func (a *app) service(cmd *cobra.Command) (*ssmdoc.Service, error) {
	logger, err := a.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	config, err := a.config(cmd.Context())
	if err != nil {
		return nil, err
	}
	return ssmdoc.New(
		ssmdoc.WithConfig(config),
		ssmdoc.WithMetaBaseURL(a.baseURL),
		ssmdoc.WithLogger(logger),
	)
}
