package usecase

import "errors"

var (
	ErrNoArticle        = errors.New("no article found or scraping failed")
	ErrMissingSourceURL = errors.New("source URL is required")
	ErrMissingSigner    = errors.New("signer address is required")
)
