package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Anaso-Internacia/anaso-site-api-models/service/vo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const hejmoJSON = `{
	"title": "a/Hejmo",
	"layout": "Masonry",
	"sections": [
		{"section": {"Post": {
			"title": "Saluton",
			"body_html": "<p class=\"lead\">Bonvenon al <a href=\"/a/Hejmo\">a/Hejmo</a></p><p>Legu la regulojn.</p>",
			"motions_tl": [], "motions_tr": [], "motions_br": [], "motions_bl": []
		}}},
		{"section": {"Carousel": {"slides": 3}}},
		"not a section"
	]
}`

type fakeService struct {
	doc *vo.Document
	err error
}

func (f *fakeService) GetDocument(ctx context.Context, path string) (*vo.Document, error) {
	return f.doc, f.err
}

func (f *fakeService) Summarize(ctx context.Context, path string) (*vo.PageSummary, []vo.Issue, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return &f.doc.PageSummary, f.doc.Issues, nil
}

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/page/a/Hejmo" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(hejmoJSON))
	}))
	t.Cleanup(server.Close)
	return server
}

func callRequest(name string, args any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Request: mcp.Request{
			Method: "tools/call",
		},
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content %T", result.Content[0])
	return text.Text
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(nil, nil, nil))
	assert.NotNil(t, NewServer(zap.NewNop(), http.DefaultClient, &fakeService{}))
}

func TestDecodePageHandler(t *testing.T) {
	handler := getDecodePageHandler(zap.NewNop())
	args := DecodePageRequest{Payload: hejmoJSON}

	result, err := handler(context.Background(), callRequest("decodePage", args), args)
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var response DecodePageResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	require.NotNil(t, response.Page)
	assert.Len(t, response.Page.Sections, 2)
	assert.Equal(t, []string{"Post", "Unknown"}, response.Summary.Sections)
	require.Len(t, response.Issues, 3)
	assert.Equal(t, "layout", response.Issues[0].Path)
	assert.Equal(t, "Masonry", response.Issues[0].Tag)
	assert.Equal(t, "skipped", response.Issues[2].Kind)
}

func TestDecodePageHandlerRejects(t *testing.T) {
	handler := getDecodePageHandler(zap.NewNop())
	for _, payload := range []string{"", "[]", "{"} {
		args := DecodePageRequest{Payload: payload}
		result, err := handler(context.Background(), callRequest("decodePage", args), args)
		require.NoError(t, err)
		assert.True(t, result.IsError, "payload %q", payload)
	}
}

func TestFetchPageHandler(t *testing.T) {
	pages := newPageServer(t)
	handler := getFetchPageHandler(zap.NewNop(), pages.Client())

	args := FetchPageRequest{URL: pages.URL + "/api/page/a/Hejmo"}
	result, err := handler(context.Background(), callRequest("fetchPage", args), args)
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var response FetchPageResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, "a/Hejmo", response.Summary.Title)
	assert.Equal(t, args.URL, response.Summary.URL)
	assert.Len(t, response.Issues, 3)

	args = FetchPageRequest{URL: pages.URL + "/api/page/missing"}
	result, err = handler(context.Background(), callRequest("fetchPage", args), args)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "404")
}

func TestPostMarkdownHandler(t *testing.T) {
	pages := newPageServer(t)
	handler := getPostMarkdownHandler(pages.Client())

	args := PostMarkdownRequest{URL: pages.URL + "/api/page/a/Hejmo", Selector: ".lead"}
	result, err := handler(context.Background(), callRequest("postMarkdown", args), args)
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var response PostMarkdownResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Contains(t, string(response.Markdown), "## Saluton")
	assert.Contains(t, string(response.Markdown), "[a/Hejmo](/a/Hejmo)")
	assert.NotContains(t, string(response.Markdown), "regulojn")
	assert.Equal(t, []string{"/a/Hejmo"}, response.Links)
}

func TestGetDocumentHandler(t *testing.T) {
	doc := &vo.Document{PageSummary: vo.PageSummary{URL: "https://ana.so/api/page/a/Hejmo", Title: "a/Hejmo"}}
	handler := getDocumentHandler(zap.NewNop(), &fakeService{doc: doc})

	args := GetDocumentRequest{Path: "/a/Hejmo"}
	ctx := withHTTPRequest(context.Background(), httptest.NewRequest(http.MethodPost, "/mcp", nil))
	result, err := handler(ctx, callRequest("getDocument", args), args)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var response GetDocumentResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, doc, response.Document)

	handler = getDocumentHandler(zap.NewNop(), &fakeService{err: errors.New("content server down")})
	result, err = handler(context.Background(), callRequest("getDocument", args), args)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "content server down")
}

func TestSummarizePageHandler(t *testing.T) {
	doc := &vo.Document{
		PageSummary: vo.PageSummary{Title: "a/Hejmo", Sections: []string{"Post"}},
		Issues:      []vo.Issue{{Path: "layout", Kind: "unknown_variant", Tag: "Masonry"}},
	}
	handler := getSummarizePageHandler(zap.NewNop(), &fakeService{doc: doc})

	args := SummarizePageRequest{Path: "/a/Hejmo"}
	result, err := handler(context.Background(), callRequest("summarizePage", args), args)
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var response SummarizePageResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &response))
	assert.Equal(t, &doc.PageSummary, response.Summary)
	assert.Equal(t, doc.Issues, response.Issues)

	handler = getSummarizePageHandler(zap.NewNop(), &fakeService{err: errors.New("content server down")})
	result, err = handler(context.Background(), callRequest("summarizePage", args), args)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "content server down")

	result, err = handler(context.Background(), callRequest("summarizePage", SummarizePageRequest{}), SummarizePageRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func listTools(t *testing.T, serviceInstance *fakeService) string {
	t.Helper()
	s := NewServer(nil, nil, nil)
	if serviceInstance != nil {
		s = NewServer(nil, nil, serviceInstance)
	}
	response := s.HandleMessage(context.Background(), []byte(`{"jsonrpc": "2.0", "id": 1, "method": "tools/list"}`))
	data, err := json.Marshal(response)
	require.NoError(t, err)
	return string(data)
}

func TestServerTools(t *testing.T) {
	tools := listTools(t, nil)
	assert.Contains(t, tools, `"name":"decodePage"`)
	assert.NotContains(t, tools, `"name":"getDocument"`)
	assert.NotContains(t, tools, `"name":"summarizePage"`)

	tools = listTools(t, &fakeService{})
	for _, name := range []string{"decodePage", "fetchPage", "postMarkdown", "getDocument", "summarizePage"} {
		assert.Contains(t, tools, `"name":"`+name+`"`)
	}
}

func TestHandlerValidation(t *testing.T) {
	ctx := context.Background()

	result, err := getFetchPageHandler(zap.NewNop(), http.DefaultClient)(ctx, callRequest("fetchPage", FetchPageRequest{}), FetchPageRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = getPostMarkdownHandler(http.DefaultClient)(ctx, callRequest("postMarkdown", PostMarkdownRequest{}), PostMarkdownRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = getDocumentHandler(zap.NewNop(), &fakeService{})(ctx, callRequest("getDocument", GetDocumentRequest{}), GetDocumentRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
