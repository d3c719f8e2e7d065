package extractor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func defaultExtractor(t *testing.T) *SelectorExtractor {
	t.Helper()
	sel, err := Preset(DefaultPreset)
	require.NoError(t, err)
	e, err := NewSelectorExtractor(sel)
	require.NoError(t, err)
	return e
}

func TestExtractHelloWorld(t *testing.T) {
	e := defaultExtractor(t)

	article, err := e.Extract([]byte(`<h1>Hello</h1><div class="article-body">World</div>`))
	require.NoError(t, err)
	require.Equal(t, "Hello", article.Title)
	require.Equal(t, "World", article.Content)
}

func TestExtractUsesFirstMatchAndTrims(t *testing.T) {
	e := defaultExtractor(t)

	page := `<html><body>
		<h1>
			Breaking
		</h1>
		<h1>Older</h1>
		<div class="sidebar">ignored</div>
		<div class="article-body">  First body  </div>
		<div class="article-body">Second body</div>
	</body></html>`

	article, err := e.Extract([]byte(page))
	require.NoError(t, err)
	require.Equal(t, "Breaking", article.Title)
	require.Equal(t, "First body", article.Content)
}

func TestExtractMissingElements(t *testing.T) {
	e := defaultExtractor(t)

	testCases := map[string]string{
		"no heading":    `<div class="article-body">World</div>`,
		"no body":       `<h1>Hello</h1><div class="other">World</div>`,
		"empty heading": `<h1>   </h1><div class="article-body">World</div>`,
		"empty body":    `<h1>Hello</h1><div class="article-body"></div>`,
		"empty page":    ``,
	}

	for name, page := range testCases {
		t.Run(name, func(t *testing.T) {
			article, err := e.Extract([]byte(page))
			require.ErrorIs(t, err, ErrArticleNotFound)
			require.False(t, article.Complete())
		})
	}
}

func TestExtractDropsNoise(t *testing.T) {
	sel, err := Preset("kompas")
	require.NoError(t, err)
	e, err := NewSelectorExtractor(sel)
	require.NoError(t, err)

	page := `<h1 class="read__title">Judul</h1>
		<div class="read__content"><p>Isi berita.</p><p><strong>Baca juga:</strong> tautan lain</p></div>`

	article, err := e.Extract([]byte(page))
	require.NoError(t, err)
	require.Equal(t, "Judul", article.Title)
	require.Equal(t, "Isi berita.", article.Content)
}

func TestNewSelectorExtractorRequiresSelectors(t *testing.T) {
	_, err := NewSelectorExtractor(Selectors{Title: "h1"})
	require.ErrorIs(t, err, ErrNoSelectors)
}

func TestPreset(t *testing.T) {
	sel, err := Preset("")
	require.NoError(t, err)
	require.Equal(t, "h1", sel.Title)
	require.Equal(t, "div.article-body", sel.Body)

	_, err = Preset("unknown-site")
	require.Error(t, err)

	require.Equal(t, []string{"detik", "generic", "kompas", "liputan6"}, PresetNames())
}

func TestOverride(t *testing.T) {
	sel, err := Preset("detik")
	require.NoError(t, err)

	sel = sel.Override("", "article .content")
	require.Equal(t, "h1.detail__title", sel.Title)
	require.Equal(t, "article .content", sel.Body)
}

func TestSelectorsValidate(t *testing.T) {
	for _, name := range PresetNames() {
		sel, err := Preset(name)
		require.NoError(t, err)
		require.NoError(t, sel.Validate(), name)
	}

	testCases := map[string]Selectors{
		"broken title": {Title: "h1[", Body: "div.article-body"},
		"broken body":  {Title: "h1", Body: "div..article"},
		"broken drop":  {Title: "h1", Body: "div.article-body", Drop: []string{"p:has("}},
	}
	for name, sel := range testCases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, sel.Validate(), ErrInvalidSelector)

			_, err := NewSelectorExtractor(sel)
			require.ErrorIs(t, err, ErrInvalidSelector)
		})
	}
}
