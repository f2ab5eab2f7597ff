package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Anaso-Internacia/anaso-site-api-models/service/vo"
	"github.com/Anaso-Internacia/anaso-site-api-models/stela"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

// Fetch downloads url and returns the body of a 200 response.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// FetchPage downloads a page payload and decodes it leniently.
func FetchPage(ctx context.Context, client *http.Client, url string) (*stela.Page, *stela.Report, error) {
	body, err := Fetch(ctx, client, url)
	if err != nil {
		return nil, nil, err
	}
	page, report, err := stela.DecodePageReport(body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode page %s: %w", url, err)
	}
	return page, report, nil
}

// Summarize outlines page. url is recorded as is.
func Summarize(url string, page *stela.Page) *vo.PageSummary {
	summary := &vo.PageSummary{URL: url}
	if page == nil {
		return summary
	}
	if page.Title != nil {
		summary.Title = *page.Title
	}
	if page.Lang != nil {
		summary.Lang = *page.Lang
	}
	if page.Layout != nil {
		summary.Layout = page.Layout.String()
	}
	if page.Hero != nil && page.Hero.Title != nil {
		summary.HeroTitle = *page.Hero.Title
	}
	if page.Social != nil && page.Social.Title != nil {
		summary.SocialTitle = *page.Social.Title
	}
	if summary.Title == "" {
		summary.Title = summary.SocialTitle
	}
	for _, s := range page.Sections {
		summary.Sections = append(summary.Sections, string(s.Section.Kind()))
	}
	summary.Motions = countMotions(page)
	return summary
}

// Issues flattens a decode report.
func Issues(report *stela.Report) []vo.Issue {
	if report.Clean() {
		return nil
	}
	issues := make([]vo.Issue, 0, len(report.Issues))
	for _, issue := range report.Issues {
		i := vo.Issue{Path: issue.Path, Kind: issue.Kind.String(), Tag: issue.Tag}
		if issue.Err != nil {
			i.Message = issue.Err.Error()
		}
		issues = append(issues, i)
	}
	return issues
}

func countMotions(page *stela.Page) int {
	n := 0
	if page.Hero != nil {
		n += len(page.Hero.Motions)
	}
	if page.Sidebar != nil {
		for _, card := range page.Sidebar.Cards {
			n += len(card.Motions)
		}
	}
	for _, s := range page.Sections {
		n += sectionMotions(s.Section)
	}
	return n
}

func sectionMotions(s stela.Section) int {
	switch v := s.Value.(type) {
	case *stela.SectionHero:
		return len(v.Hero.Motions)
	case *stela.SectionPost:
		n := len(v.Motions())
		if v.Motion != nil {
			n++
		}
		return n
	case *stela.SectionSponsor:
		return len(v.Motions)
	case *stela.SectionTiles:
		n := 0
		for _, tile := range v.Tiles {
			if tile.Motion != nil {
				n++
			}
		}
		return n
	case *stela.SectionForm:
		return inputMotions(v.Inputs)
	}
	return 0
}

func inputMotions(inputs []stela.FormInput) int {
	n := 0
	for _, input := range inputs {
		switch v := input.Variant.Value.(type) {
		case *stela.FormInputMotions:
			n += len(v.Motions)
		case *stela.FormInputSubsection:
			n += inputMotions(v.Inputs)
		case *stela.FormInputTabs:
			for _, tab := range v.Tabs {
				n += inputMotions(tab.Inputs)
			}
		}
	}
	return n
}
