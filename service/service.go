package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Anaso-Internacia/anaso-site-api-models/scrape"
	"github.com/Anaso-Internacia/anaso-site-api-models/service/vo"
	"github.com/Anaso-Internacia/anaso-site-api-models/stela"
	contentserverclient "github.com/foomo/contentserver/client"
	"github.com/foomo/contentserver/content"
	"github.com/foomo/contentserver/requests"
	"go.uber.org/zap"
)

type Service interface {
	// GetDocument resolves path in the site tree and returns its page with
	// the pages around it.
	GetDocument(ctx context.Context, path string) (*vo.Document, error)
	// Summarize fetches a single page by site path.
	Summarize(ctx context.Context, path string) (*vo.PageSummary, []vo.Issue, error)
}

// ContentServer is the part of the content server client the service uses.
type ContentServer interface {
	GetContent(ctx context.Context, request *requests.Content) (*content.SiteContent, error)
	GetNodes(ctx context.Context, env *requests.Env, nodes map[string]*requests.Node) (map[string]*content.Node, error)
}

// ContentRenderer turns a decoded page into markdown for a given mime type.
type ContentRenderer func(ctx context.Context, siteSettings SiteSettings, page *stela.Page) (vo.Markdown, error)

type SiteSettings struct {
	Env *requests.Env
	// BaseURL serves page payloads at BaseURL + PagePrefix + URI.
	BaseURL          string
	PagePrefix       string
	ContentServerURL string
	MimeTypes        []vo.MimeType
}

func (siteSettings SiteSettings) mimeTypes() []string {
	mimeTypes := make([]string, len(siteSettings.MimeTypes))
	for i, mimeType := range siteSettings.MimeTypes {
		mimeTypes[i] = string(mimeType)
	}
	return mimeTypes
}

func (siteSettings SiteSettings) pageURL(uri string) string {
	return strings.TrimSuffix(siteSettings.BaseURL, "/") + siteSettings.PagePrefix + uri
}

type service struct {
	logger           *zap.Logger
	contentServer    ContentServer
	httpClient       *http.Client
	siteSettings     SiteSettings
	contentRenderers map[vo.MimeType]ContentRenderer
}

func NewService(
	logger *zap.Logger,
	siteSettings SiteSettings,
	httpClient *http.Client,
	contentRenderers map[vo.MimeType]ContentRenderer,
) Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	contentServerClient := contentserverclient.New(
		contentserverclient.NewHTTPTransport(
			siteSettings.ContentServerURL,
			contentserverclient.HTTPTransportWithHTTPClient(httpClient),
		))
	return newService(logger, contentServerClient, siteSettings, httpClient, contentRenderers)
}

func newService(
	logger *zap.Logger,
	contentServer ContentServer,
	siteSettings SiteSettings,
	httpClient *http.Client,
	contentRenderers map[vo.MimeType]ContentRenderer,
) *service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &service{
		logger:           logger,
		contentServer:    contentServer,
		httpClient:       httpClient,
		siteSettings:     siteSettings,
		contentRenderers: contentRenderers,
	}
}

// isValidURI checks if a URI is valid for processing
func isValidURI(uri string) bool {
	return uri != "" && strings.HasPrefix(uri, "/")
}

func (s *service) fetch(ctx context.Context, uri string) (*stela.Page, *vo.PageSummary, []vo.Issue, error) {
	url := s.siteSettings.pageURL(uri)
	page, report, err := scrape.FetchPage(ctx, s.httpClient, url)
	if err != nil {
		return nil, nil, nil, err
	}
	issues := scrape.Issues(report)
	for _, issue := range issues {
		s.logger.Warn("page decoded with issues",
			zap.String("uri", uri),
			zap.String("path", issue.Path),
			zap.String("kind", issue.Kind),
			zap.String("tag", issue.Tag),
			zap.String("message", issue.Message),
		)
	}
	return page, scrape.Summarize(url, page), issues, nil
}

// neighbour summarises a page next to the requested one. Neighbours that fail
// to load are logged and left out.
func (s *service) neighbour(ctx context.Context, item *content.Item) (*vo.PageSummary, bool) {
	if item == nil || !isValidURI(item.URI) {
		return nil, false
	}
	_, summary, _, err := s.fetch(ctx, item.URI)
	if err != nil {
		s.logger.Warn("failed to load neighbour page", zap.String("uri", item.URI), zap.Error(err))
		return nil, false
	}
	s.loadItemData(summary, item)
	return summary, true
}

func (s *service) Summarize(ctx context.Context, path string) (*vo.PageSummary, []vo.Issue, error) {
	if !isValidURI(path) {
		return nil, nil, fmt.Errorf("invalid path %q", path)
	}
	_, summary, issues, err := s.fetch(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return summary, issues, nil
}

func (s *service) GetDocument(ctx context.Context, path string) (*vo.Document, error) {
	siteContent, err := s.contentServer.GetContent(ctx, &requests.Content{
		URI:   path,
		Env:   s.siteSettings.Env,
		Nodes: map[string]*requests.Node{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get content for %s: %w", path, err)
	}
	if siteContent.Item == nil {
		return nil, fmt.Errorf("no content item for %s", path)
	}

	page, summary, issues, err := s.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	s.loadItemData(summary, siteContent.Item)

	render := func(ctx context.Context, _ SiteSettings, page *stela.Page) (vo.Markdown, error) {
		return scrape.PageMarkdown(page, "")
	}
	if contentRenderer, ok := s.contentRenderers[vo.MimeType(siteContent.MimeType)]; ok {
		render = contentRenderer
	}
	markdown, err := render(ctx, s.siteSettings, page)
	if err != nil {
		return nil, err
	}

	doc := &vo.Document{
		PageSummary: *summary,
		Markdown:    markdown,
		Issues:      issues,
	}

	// Path runs from the parent up to the root.
	for i := len(siteContent.Path) - 1; i >= 0; i-- {
		if crumb, ok := s.neighbour(ctx, siteContent.Path[i]); ok {
			doc.Breadcrumb = append(doc.Breadcrumb, *crumb)
		}
	}

	if len(siteContent.Path) > 0 && siteContent.Path[0] != nil {
		parent := siteContent.Path[0]
		parentNode, err := s.node(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
		isPrevious := true
		for _, id := range parentNode.Index {
			if id == siteContent.Item.ID {
				isPrevious = false
				continue
			}
			siblingNode, ok := parentNode.Nodes[id]
			if !ok {
				return nil, errors.New("sibling node not found")
			}
			sibling, ok := s.neighbour(ctx, siblingNode.Item)
			if !ok {
				continue
			}
			if isPrevious {
				doc.PrevSiblings = append(doc.PrevSiblings, *sibling)
			} else {
				doc.NextSiblings = append(doc.NextSiblings, *sibling)
			}
		}
	}

	contentNode, err := s.node(ctx, siteContent.Item.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range contentNode.Index {
		childNode, ok := contentNode.Nodes[id]
		if !ok {
			return nil, errors.New("child node not found")
		}
		if child, ok := s.neighbour(ctx, childNode.Item); ok {
			doc.Children = append(doc.Children, *child)
		}
	}
	return doc, nil
}

func (s *service) node(ctx context.Context, id string) (*content.Node, error) {
	nodes, err := s.contentServer.GetNodes(ctx, s.siteSettings.Env, map[string]*requests.Node{
		id: {
			ID:        id,
			MimeTypes: s.siteSettings.mimeTypes(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get nodes for %s: %w", id, err)
	}
	node, ok := nodes[id]
	if !ok || node == nil {
		return nil, fmt.Errorf("content node %s not found", id)
	}
	return node, nil
}

func (s *service) loadItemData(d *vo.PageSummary, item *content.Item) {
	d.MimeType = vo.MimeType(item.MimeType)
	d.ID = item.ID
}
