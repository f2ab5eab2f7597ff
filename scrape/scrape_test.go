package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Anaso-Internacia/anaso-site-api-models/stela"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageJSON = `{
	"title": "a/Hejmo",
	"lang": "eo",
	"layout": "List",
	"social": {"title": "Hejmo ĉe Ana.so"},
	"hero": {"title": "Bonvenon", "motions": [
		{"variant": "Button", "color": "Primary", "motion": {"Href": {"uri": "/aligxi"}}}
	]},
	"sections": [
		{"section": {"Post": {
			"title": "Saluton",
			"body_html": "<p class=\"intro\">Saluton <strong>mondo</strong>!</p><p>Dua alineo</p><script>alert(1)</script>",
			"motion": {"Href": {"uri": "/p/1"}},
			"motions_tl": [],
			"motions_tr": [{"variant": "Link", "color": "Text", "motion": {"Share": {}}}],
			"motions_br": [{"variant": "Link", "color": "Text", "motion": {"ApiCall": {}}}],
			"motions_bl": []
		}}},
		{"section": {"Tiles": {"layout": "Grid", "tiles": [{"motion": {"Href": {"uri": "/t"}}}, {}]}}},
		{"section": {"Carousel": {}}},
		17
	]
}`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/page/a/Hejmo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pageJSON))
	})
	mux.HandleFunc("/api/page/broken", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["not", "a", "page"]`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchPage(t *testing.T) {
	server := newPageServer(t)

	page, report, err := FetchPage(context.Background(), server.Client(), server.URL+"/api/page/a/Hejmo")
	require.NoError(t, err)
	require.Len(t, page.Sections, 3)
	assert.Len(t, report.Dropped(), 1)
	assert.Equal(t, 1, report.Count(stela.IssueUnknownVariant))

	summary := Summarize("https://ana.so/a/Hejmo", page)
	assert.Equal(t, "a/Hejmo", summary.Title)
	assert.Equal(t, "eo", summary.Lang)
	assert.Equal(t, "List", summary.Layout)
	assert.Equal(t, "Bonvenon", summary.HeroTitle)
	assert.Equal(t, "Hejmo ĉe Ana.so", summary.SocialTitle)
	assert.Equal(t, []string{"Post", "Tiles", "Unknown"}, summary.Sections)
	// hero 1, post corners 2 + post click 1, one tile
	assert.Equal(t, 5, summary.Motions)

	issues := Issues(report)
	require.Len(t, issues, 2)
	assert.Equal(t, "sections[2].section", issues[0].Path)
	assert.Equal(t, "unknown_variant", issues[0].Kind)
	assert.Equal(t, "Carousel", issues[0].Tag)
	assert.Equal(t, "sections[3]", issues[1].Path)
	assert.Equal(t, "skipped", issues[1].Kind)
	assert.NotEmpty(t, issues[1].Message)
}

func TestFetchPageErrors(t *testing.T) {
	server := newPageServer(t)

	_, _, err := FetchPage(context.Background(), server.Client(), server.URL+"/api/page/missing")
	require.ErrorIs(t, err, ErrUnexpectedStatus)

	_, _, err = FetchPage(context.Background(), server.Client(), server.URL+"/api/page/broken")
	var structErr *stela.StructuralError
	require.ErrorAs(t, err, &structErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Fetch(ctx, server.Client(), server.URL+"/api/page/a/Hejmo")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSummarizeFallsBackToSocialTitle(t *testing.T) {
	social := "Hejmo"
	summary := Summarize("u", &stela.Page{Social: &stela.SocialData{Title: &social}})
	assert.Equal(t, "Hejmo", summary.Title)
	assert.Empty(t, summary.Sections)
	assert.Zero(t, summary.Motions)

	assert.Equal(t, "u", Summarize("u", nil).URL)
}

func TestIssuesClean(t *testing.T) {
	assert.Nil(t, Issues(nil))
	assert.Nil(t, Issues(&stela.Report{}))
}

func TestFormMotionsCounted(t *testing.T) {
	page, err := stela.DecodePage([]byte(`{"sections": [{"section": {"Form": {"inputs": [
		{"variant": {"Tabs": {"tabs": [{"inputs": [
			{"variant": {"Motions": {"motions": [
				{"variant": "Button", "color": "Primary", "motion": {"Submit": {}}},
				{"variant": "Link", "color": "Text", "motion": {"Href": {"uri": "/"}}}
			]}}}
		]}]}}}
	]}}}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, Summarize("", page).Motions)
}
