// Package app wires configuration into the provider's components.
package app

import (
	"context"
	"fmt"

	mongoDriver "go.mongodb.org/mongo-driver/mongo"

	"news_moves/internal/adapter/browser"
	"news_moves/internal/adapter/extractor"
	"news_moves/internal/adapter/httpclient"
	mongoAdapter "news_moves/internal/adapter/mongo"
	"news_moves/internal/adapter/movecli"
	"news_moves/internal/config"
	"news_moves/internal/logger"
	"news_moves/internal/repository"
	"news_moves/internal/usecase"
)

type App struct {
	Config    *config.Config
	Log       *logger.Logger
	Service   *usecase.ProviderService
	Submitter *movecli.Submitter
	Journal   *mongoAdapter.Journal

	mongoClient *mongoDriver.Client
}

// NewFetcher picks the plain HTTP or headless browser fetcher.
func NewFetcher(cfg *config.Config) repository.Fetcher {
	if cfg.UseBrowser() {
		return browser.NewFetcher(cfg.Source.BrowserPath, cfg.Source.WaitFor).
			WithDebug(cfg.Logging.Level == "debug")
	}
	return httpclient.NewFetcher(httpclient.NewHTTPClient(cfg.Source.Timeout), cfg.Source.UserAgent)
}

func NewSubmitter(cfg *config.Config) *movecli.Submitter {
	return movecli.NewSubmitter(movecli.Options{
		Binary:   cfg.Move.Binary,
		Script:   cfg.Move.Script,
		Function: cfg.Move.Function,
		DryRun:   cfg.Move.DryRun,
	}, movecli.ExecRunner{Dir: cfg.Move.WorkDir})
}

// New builds every component. The Mongo journal is only connected when a URI
// is configured.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	sel, err := cfg.ExtractorSelectors()
	if err != nil {
		return nil, err
	}
	ext, err := extractor.NewSelectorExtractor(sel)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Log:       log,
		Submitter: NewSubmitter(cfg),
	}

	opts := []usecase.Option{usecase.WithLogger(log)}

	if cfg.Mongo.URI != "" {
		client, err := mongoAdapter.NewClient(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		a.mongoClient = client
		a.Journal = mongoAdapter.NewJournal(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
		if err := a.Journal.EnsureIndexes(ctx); err != nil {
			log.Warn("failed to create journal index", "error", err)
		}
		opts = append(opts, usecase.WithJournal(a.Journal))
	}

	a.Service, err = usecase.NewProviderService(
		usecase.ProviderConfig{SourceURL: cfg.Source.URL, Signer: cfg.Move.Signer},
		NewFetcher(cfg),
		ext,
		a.Submitter,
		opts...,
	)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	log.Debug("provider configured",
		"url", cfg.Source.URL,
		"fetch_mode", cfg.Source.FetchMode,
		"title_selector", sel.Title,
		"body_selector", sel.Body,
		"journal", a.Journal != nil,
	)
	return a, nil
}

func (a *App) Close(ctx context.Context) {
	if a.mongoClient == nil {
		return
	}
	if err := a.mongoClient.Disconnect(ctx); err != nil {
		a.Log.Warn("failed to disconnect from MongoDB", "error", err)
	}
}
