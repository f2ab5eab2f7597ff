package stela

import "encoding/json"

// Page is an entire renderable page.
//
// Every field except Sections is optional-default: a value that fails to
// decode is dropped to nil instead of failing the page. Sections that fail to
// decode are skipped.
type Page struct {
	Title *string `json:"title"`
	// Lang is the ISO-639 code of the page itself, such as "en" or "eo".
	// Individual sections may still be in other languages.
	Lang    *string     `json:"lang"`
	Social  *SocialData `json:"social"`
	Layout  *PageLayout `json:"layout"`
	Hero    *Hero       `json:"hero"`
	Sidebar *Sidebar    `json:"sidebar"`

	Sections []VisualSection `json:"sections"`
}

func (p Page) MarshalJSON() ([]byte, error) {
	type wire Page
	w := wire(p)
	w.Sections = orEmpty(w.Sections)
	return json.Marshal(w)
}

func (p *Page) UnmarshalJSON(data []byte) error {
	return unmarshalInto(p, data, decodePage)
}

func decodePage(d decoder, raw json.RawMessage) (Page, error) {
	f, err := d.record(raw)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Title:    defaulted(f, "title", decodeString),
		Lang:     defaulted(f, "lang", decodeString),
		Social:   defaulted(f, "social", decodeSocialData),
		Layout:   defaulted(f, "layout", decodePageLayout),
		Hero:     defaulted(f, "hero", decodeHero),
		Sidebar:  defaulted(f, "sidebar", decodeSidebar),
		Sections: defaultedValue(f, "sections", skipErrors(decodeVisualSection)),
	}, nil
}

// PageLayout is how sections are arranged on screen.
type PageLayout uint8

const (
	PageLayoutUnknown PageLayout = iota
	// PageLayoutList stacks all sections vertically.
	PageLayoutList
	// PageLayoutTabbed puts each section behind a tab.
	PageLayoutTabbed
)

var pageLayoutNames = []string{unknownTag, "List", "Tabbed"}

func (l PageLayout) String() string { return enumName(l, pageLayoutNames) }

func (l PageLayout) MarshalJSON() ([]byte, error) { return marshalEnum(l, pageLayoutNames) }

func (l *PageLayout) UnmarshalJSON(data []byte) error {
	return unmarshalInto(l, data, decodePageLayout)
}

func decodePageLayout(d decoder, raw json.RawMessage) (PageLayout, error) {
	return decodeEnum[PageLayout](d, raw, pageLayoutNames)
}
