package domain

import "time"

// Article is the latest story scraped from the source page.
type Article struct {
	Title     string
	Content   string
	URL       string
	FetchedAt time.Time
}

// Complete reports whether both fields needed for submission were extracted.
func (a Article) Complete() bool {
	return a.Title != "" && a.Content != ""
}

// Submission holds the arguments of one addArticle call.
type Submission struct {
	Timestamp int64
	Title     string
	Content   string
	Signer    string
}

// NewSubmission stamps an article with the given time and signer.
func NewSubmission(a Article, at time.Time, signer string) Submission {
	return Submission{
		Timestamp: at.Unix(),
		Title:     a.Title,
		Content:   a.Content,
		Signer:    signer,
	}
}
