package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"news_moves/internal/domain"
)

var (
	ErrArticleNotFound = errors.New("no article found")
	ErrNoSelectors     = errors.New("title and body selectors are required")
)

// SelectorExtractor reads the first title and body match from a page.
type SelectorExtractor struct {
	selectors Selectors
}

func NewSelectorExtractor(selectors Selectors) (*SelectorExtractor, error) {
	if err := selectors.Validate(); err != nil {
		return nil, err
	}
	return &SelectorExtractor{selectors: selectors}, nil
}

func (e *SelectorExtractor) Extract(page []byte) (domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to parse page: %w", err)
	}

	for _, sel := range e.selectors.Drop {
		doc.Find(sel).Remove()
	}

	title := strings.TrimSpace(doc.Find(e.selectors.Title).First().Text())
	if title == "" {
		return domain.Article{}, fmt.Errorf("%w: nothing matched title selector %q", ErrArticleNotFound, e.selectors.Title)
	}

	content := strings.TrimSpace(doc.Find(e.selectors.Body).First().Text())
	if content == "" {
		return domain.Article{}, fmt.Errorf("%w: nothing matched body selector %q", ErrArticleNotFound, e.selectors.Body)
	}

	return domain.Article{Title: title, Content: content}, nil
}
