package vo

type Markdown string

type MimeType string

// PageSummary is the outline of one decoded page.
type PageSummary struct {
	URL         string   `json:"url"`
	ID          string   `json:"id,omitempty"`       // content server item id
	MimeType    MimeType `json:"mimeType,omitempty"` // content server mime type
	Title       string   `json:"title"`
	Lang        string   `json:"lang,omitempty"`
	Layout      string   `json:"layout,omitempty"`
	HeroTitle   string   `json:"heroTitle,omitempty"`
	SocialTitle string   `json:"socialTitle,omitempty"`
	Sections    []string `json:"sections"` // section kinds in page order
	Motions     int      `json:"motions"`  // buttons anywhere on the page
}

// Issue is a problem the lenient decoder recovered from.
type Issue struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message,omitempty"`
}

type Document struct {
	PageSummary PageSummary `json:"summary"`
	Markdown    Markdown    `json:"markdown,omitempty"` // every post body in markdown
	Issues      []Issue     `json:"issues,omitempty"`

	Breadcrumb   []PageSummary `json:"breadcrumb,omitempty"` // root first
	Children     []PageSummary `json:"children,omitempty"`
	PrevSiblings []PageSummary `json:"prev,omitempty"`
	NextSiblings []PageSummary `json:"next,omitempty"`
}
