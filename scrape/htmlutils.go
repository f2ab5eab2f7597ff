package scrape

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/Anaso-Internacia/anaso-site-api-models/service/vo"
	"github.com/Anaso-Internacia/anaso-site-api-models/stela"
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var ErrNoMatch = errors.New("no element matches selector")

// Post bodies are user generated; everything goes through this policy first.
var postPolicy = newPostPolicy()

func newPostPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}

func sanitize(body string) string {
	return postPolicy.Sanitize(body)
}

// PostMarkdown converts the body of a post to markdown, headed by its title.
// A non-empty selector narrows the body to the first matching element.
func PostMarkdown(post *stela.SectionPost, selector string) (vo.Markdown, error) {
	if post == nil || post.BodyHTML == nil {
		return "", nil
	}
	doc, err := html.Parse(strings.NewReader(sanitize(*post.BodyHTML)))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	node := doc
	if selector != "" {
		node, err = extractNodeBySelector(doc, selector)
		if err != nil {
			return "", err
		}
	}

	markdownBytes, err := htmltomarkdown.ConvertNode(node)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	var b strings.Builder
	if post.Title != nil && *post.Title != "" {
		b.WriteString("## ")
		b.WriteString(*post.Title)
		b.WriteString("\n\n")
	}
	b.Write(bytes.TrimSpace(markdownBytes))
	return vo.Markdown(b.String()), nil
}

// PageMarkdown joins the markdown of every post on the page. Posts without a
// match for selector are left out.
func PageMarkdown(page *stela.Page, selector string) (vo.Markdown, error) {
	if page == nil {
		return "", nil
	}
	var parts []string
	for _, s := range page.Sections {
		post, ok := s.Section.Value.(*stela.SectionPost)
		if !ok {
			continue
		}
		md, err := PostMarkdown(post, selector)
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		if err != nil {
			return "", err
		}
		if md != "" {
			parts = append(parts, string(md))
		}
	}
	return vo.Markdown(strings.Join(parts, "\n\n")), nil
}

// PostLinks lists the link targets and image sources in a post body, in
// document order and without duplicates. Unsafe URLs are stripped first.
func PostLinks(post *stela.SectionPost) ([]string, error) {
	if post == nil || post.BodyHTML == nil {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitize(*post.BodyHTML)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var links []string
	seen := map[string]bool{}
	collect := func(attr string) func(int, *goquery.Selection) {
		return func(_ int, s *goquery.Selection) {
			v, ok := s.Attr(attr)
			v = strings.TrimSpace(v)
			if !ok || v == "" || seen[v] {
				return
			}
			seen[v] = true
			links = append(links, v)
		}
	}
	doc.Find("a[href]").Each(collect("href"))
	doc.Find("img[src]").Each(collect("src"))
	return links, nil
}

// extractNodeBySelector finds the first node matching a simple selector:
// "#id", ".class" or a tag name.
func extractNodeBySelector(doc *html.Node, selector string) (*html.Node, error) {
	selector = strings.TrimSpace(selector)
	var match func(*html.Node) bool
	switch {
	case strings.HasPrefix(selector, "#"):
		id := strings.TrimPrefix(selector, "#")
		match = func(n *html.Node) bool { return attr(n, "id") == id }
	case strings.HasPrefix(selector, "."):
		class := strings.TrimPrefix(selector, ".")
		match = func(n *html.Node) bool { return hasClass(n, class) }
	default:
		tag := strings.ToLower(selector)
		match = func(n *html.Node) bool { return n.Data == tag }
	}
	if n := findNode(doc, match); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoMatch, selector)
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
