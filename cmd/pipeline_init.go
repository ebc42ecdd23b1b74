package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/growthlens/investscan/internal/extract"
	"github.com/growthlens/investscan/internal/fetcher"
	"github.com/growthlens/investscan/internal/geo"
	"github.com/growthlens/investscan/internal/pipeline"
	"github.com/growthlens/investscan/internal/reconcile"
	anthropicpkg "github.com/growthlens/investscan/pkg/anthropic"
	"github.com/growthlens/investscan/pkg/gdelt"
	"github.com/growthlens/investscan/pkg/gnews"
	"github.com/growthlens/investscan/pkg/jina"
)

// pipelineEnv holds the initialized clients and pipeline needed by the
// scan/serve commands.
type pipelineEnv struct {
	Pipeline *pipeline.Pipeline
	States   *geo.Table
}

// initPipeline validates configuration for the given command and builds the
// state table, discovery providers, fetcher, and optional LLM/embedding
// clients.
func initPipeline(command string) (*pipelineEnv, error) {
	if err := cfg.Validate(command); err != nil {
		return nil, err
	}

	states, err := loadStates()
	if err != nil {
		return nil, err
	}

	f := fetcher.NewArticleFetcher(fetcher.Options{
		Timeout:     time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		CharLimit:   cfg.Fetch.CharLimit,
		PerHostRate: rate.Limit(cfg.Fetch.PerHostRate),
		Burst:       cfg.Fetch.Burst,
	})

	// The extractor is only reachable in AI mode; heuristic scans stay
	// keyless and never construct an Anthropic client.
	var extractor pipeline.RecordExtractor
	if cfg.Anthropic.Key != "" {
		extractor = extract.New(anthropicpkg.NewClient(cfg.Anthropic.Key), states, extract.Options{
			Model:        cfg.Anthropic.Model,
			BatchSize:    cfg.Anthropic.BatchSize,
			MaxTokens:    int64(cfg.Anthropic.MaxTokens),
			ArticleChars: cfg.Anthropic.ArticleChars,
		})
	}

	var embedder reconcile.Embedder
	if cfg.Embeddings.Enabled && cfg.Embeddings.Key != "" {
		embedder = jina.NewClient(cfg.Embeddings.Key,
			jina.WithBaseURL(cfg.Embeddings.BaseURL),
			jina.WithModel(cfg.Embeddings.Model))
		zap.L().Info("semantic merge enabled", zap.String("model", cfg.Embeddings.Model))
	} else {
		zap.L().Debug("embeddings key not set or disabled, semantic merge skipped")
	}

	return &pipelineEnv{
		Pipeline: pipeline.New(cfg, states, buildProviders(), f, extractor, embedder),
		States:   states,
	}, nil
}

// loadStates returns the built-in state alias table, or the configured
// override file merged over it.
func loadStates() (*geo.Table, error) {
	if cfg.Geo.TablePath == "" {
		return geo.DefaultTable(), nil
	}
	t, err := geo.LoadTable(cfg.Geo.TablePath)
	if err != nil {
		return nil, eris.Wrap(err, "load state table")
	}
	zap.L().Info("state alias table loaded",
		zap.String("path", cfg.Geo.TablePath),
		zap.Int("states", len(t.States())))
	return t, nil
}

func buildProviders() []pipeline.Provider {
	var providers []pipeline.Provider
	for _, name := range cfg.Discovery.Providers {
		switch name {
		case "gnews":
			providers = append(providers, pipeline.NewGNewsProvider(gnews.NewClient()))
		case "gdelt":
			providers = append(providers, pipeline.NewGDELTProvider(gdelt.NewClient()))
		default:
			zap.L().Warn("unknown discovery provider in config, skipping", zap.String("provider", name))
		}
	}
	return providers
}
