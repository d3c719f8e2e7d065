package repository

import (
	"context"

	"news_moves/internal/domain"
)

// Fetcher downloads the raw markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Extractor turns page markup into an article.
type Extractor interface {
	Extract(page []byte) (domain.Article, error)
}
