package stela

import "encoding/json"

// SectionPost is user-generated content.
type SectionPost struct {
	Title      *string `json:"title"`
	Image      *Image  `json:"image"`
	Background *Image  `json:"background"` // shown blurred
	IsPinned   *bool   `json:"is_pinned"`
	BodyHTML   *string `json:"body_html"`
	// Motion runs when the post itself is clicked.
	Motion *Motion `json:"motion"`

	// Buttons in each corner: top-left, top-right, bottom-right, bottom-left.
	MotionsTL []VisualMotion `json:"motions_tl"`
	MotionsTR []VisualMotion `json:"motions_tr"`
	MotionsBR []VisualMotion `json:"motions_br"`
	MotionsBL []VisualMotion `json:"motions_bl"`
}

func (*SectionPost) sectionKind() SectionKind { return SectionKindPost }

func (p SectionPost) MarshalJSON() ([]byte, error) {
	type wire SectionPost
	w := wire(p)
	w.MotionsTL = orEmpty(w.MotionsTL)
	w.MotionsTR = orEmpty(w.MotionsTR)
	w.MotionsBR = orEmpty(w.MotionsBR)
	w.MotionsBL = orEmpty(w.MotionsBL)
	return json.Marshal(w)
}

// Motions returns the corner buttons in reading order.
func (p *SectionPost) Motions() []VisualMotion {
	var all []VisualMotion
	all = append(all, p.MotionsTL...)
	all = append(all, p.MotionsTR...)
	all = append(all, p.MotionsBL...)
	all = append(all, p.MotionsBR...)
	return all
}

func decodeSectionPost(d decoder, raw json.RawMessage) (SectionPost, error) {
	f, err := d.record(raw)
	if err != nil {
		return SectionPost{}, err
	}
	p := SectionPost{
		Title:      optional(f, "title", decodeString),
		Image:      optional(f, "image", decodeImage),
		Background: optional(f, "background", decodeImage),
		IsPinned:   optional(f, "is_pinned", decodeBool),
		BodyHTML:   optional(f, "body_html", decodeString),
		Motion:     optional(f, "motion", decodeMotion),
		MotionsTL:  required(f, "motions_tl", sliceOf(decodeVisualMotion)),
		MotionsTR:  required(f, "motions_tr", sliceOf(decodeVisualMotion)),
		MotionsBR:  required(f, "motions_br", sliceOf(decodeVisualMotion)),
		MotionsBL:  required(f, "motions_bl", sliceOf(decodeVisualMotion)),
	}
	if f.err != nil {
		return SectionPost{}, f.err
	}
	return p, nil
}
