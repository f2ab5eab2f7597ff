package stela

// IssueKind says which leniency rule absorbed a problem.
type IssueKind uint8

const (
	// IssueDefaulted: an optional field failed to decode and was reset to its zero value.
	IssueDefaulted IssueKind = iota + 1
	// IssueSkipped: a sequence element failed to decode and was dropped.
	IssueSkipped
	// IssueUnknownVariant: a union tag or enum value was not recognised and became Unknown.
	IssueUnknownVariant
)

func (k IssueKind) String() string {
	switch k {
	case IssueDefaulted:
		return "defaulted"
	case IssueSkipped:
		return "skipped"
	case IssueUnknownVariant:
		return "unknown_variant"
	default:
		return "unknown"
	}
}

// Issue is one problem the decoder recovered from.
type Issue struct {
	Path string
	Kind IssueKind
	// Tag is the unrecognised wire token for IssueUnknownVariant.
	Tag string
	// Err is the absorbed error for IssueDefaulted and IssueSkipped.
	Err error
}

// Report collects everything a lenient decode recovered from. A nil *Report
// discards issues.
type Report struct {
	Issues []Issue
}

func (r *Report) add(issue Issue) {
	if r == nil {
		return
	}
	r.Issues = append(r.Issues, issue)
}

// mark and rollback drop issues recorded inside a subtree that was later
// discarded as a whole.
func (r *Report) mark() int {
	if r == nil {
		return 0
	}
	return len(r.Issues)
}

func (r *Report) rollback(n int) {
	if r == nil || n > len(r.Issues) {
		return
	}
	r.Issues = r.Issues[:n]
}

// Clean reports whether the decode needed no leniency at all.
func (r *Report) Clean() bool {
	return r == nil || len(r.Issues) == 0
}

// Count returns the number of issues of the given kind.
func (r *Report) Count(kind IssueKind) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

// Dropped returns the sequence elements that were skipped.
func (r *Report) Dropped() []Issue {
	if r == nil {
		return nil
	}
	var dropped []Issue
	for _, issue := range r.Issues {
		if issue.Kind == IssueSkipped {
			dropped = append(dropped, issue)
		}
	}
	return dropped
}
