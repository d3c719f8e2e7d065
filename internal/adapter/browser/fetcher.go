package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"

	"github.com/chromedp/chromedp"
)

var ErrEmptyPage = errors.New("browser returned an empty page")

// Browsers tried in order when no explicit executable is configured.
var candidateExecutables = []string{"brave", "brave-browser", "chromium-browser", "chromium", "google-chrome"}

// Fetcher renders pages in a headless browser for sites that build their
// article markup with JavaScript.
type Fetcher struct {
	execPath string
	waitFor  string
	debug    bool
}

// NewFetcher creates a fetcher. waitFor is a CSS selector that must be visible
// before the page is captured; empty means wait for body.
func NewFetcher(execPath, waitFor string) *Fetcher {
	if execPath == "" {
		execPath = FindFirstExecutable(candidateExecutables...)
	}
	if waitFor == "" {
		waitFor = "body"
	}
	return &Fetcher{execPath: execPath, waitFor: waitFor}
}

// WithDebug forwards chromedp's own log output to the standard logger.
func (f *Fetcher) WithDebug(debug bool) *Fetcher {
	f.debug = debug
	return f
}

func FindFirstExecutable(executables ...string) string {
	for _, executable := range executables {
		path, err := exec.LookPath(executable)
		if err == nil {
			return path
		}
	}
	return ""
}

func (f *Fetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", true))
	if f.execPath != "" {
		opts = append(opts, chromedp.ExecPath(f.execPath))
	}
	return opts
}

func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, f.allocatorOptions()...)
	defer cancel()

	var ctxOpts []chromedp.ContextOption
	if f.debug {
		ctxOpts = append(ctxOpts, chromedp.WithLogf(log.Printf))
	}
	taskCtx, cancel := chromedp.NewContext(allocCtx, ctxOpts...)
	defer cancel()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(f.waitFor, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp failed to render %s: %w", pageURL, err)
	}

	if html == "" {
		return nil, ErrEmptyPage
	}
	return []byte(html), nil
}
