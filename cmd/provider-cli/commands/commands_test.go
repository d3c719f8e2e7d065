package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"news_moves/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		submitTitle, submitContent, submitTimestamp, submitPrint = "", "", 0, false
		runDryRun = false
		historyLimit = 20
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newsServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<h1>Hello</h1><div class="article-body">World</div>`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmitPrint(t *testing.T) {
	t.Setenv("SIGNER_ADDRESS", "0xabc")

	out, err := execute(t, "submit", "--title", "T", "--content", "C", "--timestamp", "1000", "--print")
	require.NoError(t, err)
	require.Equal(t, "move call --signer 0xabc --script NewsMoves.mvir addArticle (1000, \"T\", \"C\")\n", out)
}

func TestSubmitRequiresArticle(t *testing.T) {
	_, err := execute(t, "submit", "--title", "T", "--print")
	require.ErrorIs(t, err, errEmptyArticle)
}

func TestScrape(t *testing.T) {
	t.Setenv("SOURCE_URL", newsServer(t).URL)

	out, err := execute(t, "scrape")
	require.NoError(t, err)
	require.Contains(t, out, "Hello")
	require.Contains(t, out, "World")
}

func TestRunDryRun(t *testing.T) {
	t.Setenv("SOURCE_URL", newsServer(t).URL)

	out, err := execute(t, "run", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, string(domain.StatusSubmitted))
	require.Contains(t, out, "dry run: move call")
}

func TestHistoryRequiresJournal(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := execute(t, "history")
	require.ErrorIs(t, err, errNoJournal)
}

func TestRenderHistory(t *testing.T) {
	var out bytes.Buffer
	renderHistory(&out, []domain.CycleResult{
		{
			Status:    domain.StatusSubmitted,
			Article:   &domain.Article{Title: "Hello", Content: "World"},
			StartedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Duration:  2 * time.Second,
		},
		{
			Status:    domain.StatusFetchFailed,
			Error:     "unexpected status code: 404",
			StartedAt: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
		},
	})

	require.Contains(t, out.String(), "2024-05-01 10:00:00")
	require.Contains(t, out.String(), "Hello")
	require.Contains(t, out.String(), "fetch_failed")
	require.Contains(t, out.String(), "unexpected status code: 404")
}
