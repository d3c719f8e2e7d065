package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"news_moves/internal/domain"
	"news_moves/internal/logger"
	"news_moves/internal/repository"
)

// ProviderService runs the fetch, extract and submit cycle. Cycles are
// serialized: a manual trigger waits for a scheduled run to finish.
type ProviderService struct {
	fetcher   repository.Fetcher
	extractor repository.Extractor
	submitter repository.Submitter
	journal   repository.Journal

	sourceURL string
	signer    string
	now       func() time.Time
	log       *logger.Logger

	mu sync.Mutex

	lastMu sync.RWMutex
	last   *domain.CycleResult
}

type ProviderConfig struct {
	SourceURL string
	Signer    string
}

type Option func(*ProviderService)

// WithJournal records every cycle result in j.
func WithJournal(j repository.Journal) Option {
	return func(s *ProviderService) { s.journal = j }
}

func WithClock(now func() time.Time) Option {
	return func(s *ProviderService) { s.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *ProviderService) { s.log = l }
}

func NewProviderService(
	cfg ProviderConfig,
	fetcher repository.Fetcher,
	extractor repository.Extractor,
	submitter repository.Submitter,
	opts ...Option,
) (*ProviderService, error) {
	if cfg.SourceURL == "" {
		return nil, ErrMissingSourceURL
	}
	if cfg.Signer == "" {
		return nil, ErrMissingSigner
	}

	s := &ProviderService{
		fetcher:   fetcher,
		extractor: extractor,
		submitter: submitter,
		sourceURL: cfg.SourceURL,
		signer:    cfg.Signer,
		now:       time.Now,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Scrape fetches the source page and extracts the current article.
func (s *ProviderService) Scrape(ctx context.Context) (domain.Article, error) {
	page, err := s.fetcher.Fetch(ctx, s.sourceURL)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to fetch %s: %w", s.sourceURL, err)
	}

	article, err := s.extractor.Extract(page)
	if err != nil {
		return domain.Article{}, fmt.Errorf("%w: %w", ErrNoArticle, err)
	}
	if !article.Complete() {
		return domain.Article{}, ErrNoArticle
	}

	article.URL = s.sourceURL
	article.FetchedAt = s.now()
	return article, nil
}

// Submit stamps the article with the current time and sends it on-chain.
func (s *ProviderService) Submit(ctx context.Context, article domain.Article) (domain.Submission, string, error) {
	sub := domain.NewSubmission(article, s.now(), s.signer)
	out, err := s.submitter.Submit(ctx, sub)
	return sub, out, err
}

// RunCycle performs one full pass. Failures are logged and reported in the
// result; they never escape as errors or panics.
func (s *ProviderService) RunCycle(ctx context.Context) domain.CycleResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := domain.CycleResult{StartedAt: s.now()}
	log := s.log.With("url", s.sourceURL)

	article, err := s.Scrape(ctx)
	switch {
	case errors.Is(err, ErrNoArticle):
		result.Status = domain.StatusNoArticle
		result.Err = err
		log.Warn("no article found or scraping failed", "error", err)
	case err != nil:
		result.Status = domain.StatusFetchFailed
		result.Err = err
		log.Warn("error scraping the news article", "error", err)
	default:
		result.Article = &article

		sub, out, err := s.Submit(ctx, article)
		result.Submission = &sub
		result.Output = out
		if err != nil {
			result.Status = domain.StatusSubmitFailed
			result.Err = err
			log.Error("error calling the contract", "error", err, "title", article.Title, "output", out)
		} else {
			result.Status = domain.StatusSubmitted
			log.Info("successfully called the contract", "title", article.Title, "timestamp", sub.Timestamp)
		}
	}

	if result.Err != nil {
		result.Error = result.Err.Error()
	}
	result.Duration = s.now().Sub(result.StartedAt)

	s.record(ctx, result)
	return result
}

func (s *ProviderService) record(ctx context.Context, result domain.CycleResult) {
	s.lastMu.Lock()
	s.last = &result
	s.lastMu.Unlock()

	if s.journal == nil {
		return
	}
	if err := s.journal.Record(context.WithoutCancel(ctx), result); err != nil {
		s.log.Warn("failed to record cycle result", "error", err)
	}
}

// LastResult returns the most recent cycle result, if any cycle has run.
func (s *ProviderService) LastResult() (domain.CycleResult, bool) {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()

	if s.last == nil {
		return domain.CycleResult{}, false
	}
	return *s.last, true
}
