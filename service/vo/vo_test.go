package vo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	doc := Document{
		PageSummary: PageSummary{
			URL:      "https://ana.so/a/Hejmo",
			ID:       "hejmo",
			MimeType: "application/x-stela-page",
			Title:    "a/Hejmo",
			Lang:     "eo",
			Layout:   "List",
			Sections: []string{"Hero", "Post", "Post"},
			Motions:  7,
		},
		Markdown: `## Saluton

Bonvenon al **Ana.so**, la socia retejo nur por Esperantistoj.`,
		Issues: []Issue{
			{Path: "sections[2]", Kind: "skipped", Message: "element 2 dropped: stela: sections[2]: invalid type"},
			{Path: "sections[3].section", Kind: "unknown_variant", Tag: "Carousel"},
		},
		Breadcrumb: []PageSummary{
			{URL: "https://ana.so/", Title: "Ana.so", Sections: []string{"Tiles"}},
		},
		Children: []PageSummary{
			{URL: "https://ana.so/a/Hejmo/reguloj", Title: "Reguloj"},
			{URL: "https://ana.so/a/Hejmo/oftaj-demandoj", Title: "Oftaj demandoj"},
		},
		NextSiblings: []PageSummary{
			{URL: "https://ana.so/a/Novajxoj", Title: "a/Novaĵoj"},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "summary")
	assert.Contains(t, raw, "breadcrumb")
	assert.Contains(t, raw, "next")
	assert.NotContains(t, raw, "prev")

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc, decoded)
}
