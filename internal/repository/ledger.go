package repository

import (
	"context"

	"news_moves/internal/domain"
)

// Submitter appends an article to the on-chain news contract.
type Submitter interface {
	Submit(ctx context.Context, sub domain.Submission) (string, error)
}

// Journal keeps an audit trail of cycle results.
type Journal interface {
	Record(ctx context.Context, result domain.CycleResult) error
}
