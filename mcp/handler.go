package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Anaso-Internacia/anaso-site-api-models/scrape"
	"github.com/Anaso-Internacia/anaso-site-api-models/service"
	"github.com/Anaso-Internacia/anaso-site-api-models/service/vo"
	"github.com/Anaso-Internacia/anaso-site-api-models/stela"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const Version = "0.2.0"

type DecodePageRequest struct {
	Payload string `json:"payload"` // page JSON
}

type DecodePageResponse struct {
	Page    *stela.Page     `json:"page"` // normalised page
	Summary *vo.PageSummary `json:"summary"`
	Issues  []vo.Issue      `json:"issues,omitempty"`
}

type FetchPageRequest struct {
	URL string `json:"url"` // URL serving page JSON
}

type FetchPageResponse struct {
	Summary *vo.PageSummary `json:"summary"`
	Issues  []vo.Issue      `json:"issues,omitempty"`
}

type PostMarkdownRequest struct {
	URL      string `json:"url"`
	Selector string `json:"selector"` // optional, narrows each post body
}

type PostMarkdownResponse struct {
	Summary  *vo.PageSummary `json:"summary"`
	Markdown vo.Markdown     `json:"markdown"`
	Links    []string        `json:"links,omitempty"`
}

type GetDocumentRequest struct {
	Path string `json:"path"` // site path, e.g. /a/Hejmo
}

type GetDocumentResponse struct {
	Document *vo.Document `json:"document"`
}

type SummarizePageRequest struct {
	Path string `json:"path"` // site path, e.g. /a/Hejmo
}

type SummarizePageResponse struct {
	Summary *vo.PageSummary `json:"summary"`
	Issues  []vo.Issue      `json:"issues,omitempty"`
}

// NewServer creates an MCP server with the page tools. getDocument and
// summarizePage are only registered when serviceInstance is set.
func NewServer(logger *zap.Logger, client *http.Client, serviceInstance service.Service) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = http.DefaultClient
	}
	s := server.NewMCPServer(
		"Stela Page MCP",
		Version,
		server.WithToolCapabilities(false),
	)

	decodePageTool := mcp.NewTool("decodePage",
		mcp.WithDescription("Decode a Stela page payload leniently and report everything that had to be dropped or defaulted"),
		mcp.WithString("payload",
			mcp.Required(),
			mcp.Description("The page JSON"),
		),
	)
	s.AddTool(decodePageTool, mcp.NewTypedToolHandler(getDecodePageHandler(logger)))

	fetchPageTool := mcp.NewTool("fetchPage",
		mcp.WithDescription("Fetch a Stela page from a URL and summarise it"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL serving the page JSON"),
		),
	)
	s.AddTool(fetchPageTool, mcp.NewTypedToolHandler(getFetchPageHandler(logger, client)))

	postMarkdownTool := mcp.NewTool("postMarkdown",
		mcp.WithDescription("Fetch a Stela page and convert the bodies of its posts to markdown"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL serving the page JSON"),
		),
		mcp.WithString("selector",
			mcp.Description("Selector narrowing each post body (e.g. '#summary', '.lead', 'blockquote')"),
		),
	)
	s.AddTool(postMarkdownTool, mcp.NewTypedToolHandler(getPostMarkdownHandler(client)))

	if serviceInstance != nil {
		getDocumentTool := mcp.NewTool("getDocument",
			mcp.WithDescription("Get a page with its breadcrumb, siblings and children from the site tree"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("The site path to get the document for"),
			),
		)
		s.AddTool(getDocumentTool, mcp.NewTypedToolHandler(getDocumentHandler(logger, serviceInstance)))

		summarizePageTool := mcp.NewTool("summarizePage",
			mcp.WithDescription("Summarize a single page of the site tree and list its decode issues"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("The site path of the page"),
			),
		)
		s.AddTool(summarizePageTool, mcp.NewTypedToolHandler(getSummarizePageHandler(logger, serviceInstance)))
	}

	return s
}

func jsonResult(v any) *mcp.CallToolResult {
	responseBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err))
	}
	return mcp.NewToolResultText(string(responseBytes))
}

func logIssues(logger *zap.Logger, source string, issues []vo.Issue) {
	if len(issues) == 0 {
		return
	}
	logger.Warn("page decoded with issues", zap.String("source", source), zap.Int("issues", len(issues)))
}

func getDecodePageHandler(logger *zap.Logger) func(ctx context.Context, request mcp.CallToolRequest, args DecodePageRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args DecodePageRequest) (*mcp.CallToolResult, error) {
		if args.Payload == "" {
			return mcp.NewToolResultError("payload is required"), nil
		}

		page, report, err := stela.DecodePageReport([]byte(args.Payload))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to decode page: %v", err)), nil
		}
		issues := scrape.Issues(report)
		logIssues(logger, "payload", issues)

		return jsonResult(DecodePageResponse{
			Page:    page,
			Summary: scrape.Summarize("", page),
			Issues:  issues,
		}), nil
	}
}

func getFetchPageHandler(logger *zap.Logger, client *http.Client) func(ctx context.Context, request mcp.CallToolRequest, args FetchPageRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args FetchPageRequest) (*mcp.CallToolResult, error) {
		if args.URL == "" {
			return mcp.NewToolResultError("url is required"), nil
		}

		page, report, err := scrape.FetchPage(ctx, client, args.URL)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to fetch page: %v", err)), nil
		}
		issues := scrape.Issues(report)
		logIssues(logger, args.URL, issues)

		return jsonResult(FetchPageResponse{
			Summary: scrape.Summarize(args.URL, page),
			Issues:  issues,
		}), nil
	}
}

func getPostMarkdownHandler(client *http.Client) func(ctx context.Context, request mcp.CallToolRequest, args PostMarkdownRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args PostMarkdownRequest) (*mcp.CallToolResult, error) {
		if args.URL == "" {
			return mcp.NewToolResultError("url is required"), nil
		}

		page, _, err := scrape.FetchPage(ctx, client, args.URL)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to fetch page: %v", err)), nil
		}
		markdown, err := scrape.PageMarkdown(page, args.Selector)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to convert posts: %v", err)), nil
		}

		var links []string
		for _, s := range page.Sections {
			post, ok := s.Section.Value.(*stela.SectionPost)
			if !ok {
				continue
			}
			postLinks, err := scrape.PostLinks(post)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to collect links: %v", err)), nil
			}
			links = append(links, postLinks...)
		}

		return jsonResult(PostMarkdownResponse{
			Summary:  scrape.Summarize(args.URL, page),
			Markdown: markdown,
			Links:    links,
		}), nil
	}
}

func getDocumentHandler(logger *zap.Logger, serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args GetDocumentRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args GetDocumentRequest) (*mcp.CallToolResult, error) {
		if args.Path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}
		if req, ok := httpRequestFromContext(ctx); ok {
			logger.Debug("getDocument over http", zap.String("path", args.Path), zap.String("remote", req.RemoteAddr))
		}

		document, err := serviceInstance.GetDocument(ctx, args.Path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get document: %v", err)), nil
		}

		return jsonResult(GetDocumentResponse{Document: document}), nil
	}
}

func getSummarizePageHandler(logger *zap.Logger, serviceInstance service.Service) func(ctx context.Context, request mcp.CallToolRequest, args SummarizePageRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args SummarizePageRequest) (*mcp.CallToolResult, error) {
		if args.Path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}

		summary, issues, err := serviceInstance.Summarize(ctx, args.Path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to summarize page: %v", err)), nil
		}
		logIssues(logger, args.Path, issues)

		return jsonResult(SummarizePageResponse{Summary: summary, Issues: issues}), nil
	}
}
