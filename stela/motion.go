package stela

import (
	"encoding/json"
)

// VisualMotion displays a motion as a button.
type VisualMotion struct {
	Title *string     `json:"title"`
	Icon  *MotionIcon `json:"icon"`
	// InitialToggle is whether the button starts in its toggled-on state.
	InitialToggle *bool         `json:"initial_toggle"`
	Variant       MotionVariant `json:"variant"`
	Color         MotionColor   `json:"color"`
	Motion        Motion        `json:"motion"`
}

func (v *VisualMotion) UnmarshalJSON(data []byte) error {
	return unmarshalInto(v, data, decodeVisualMotion)
}

func decodeVisualMotion(d decoder, raw json.RawMessage) (VisualMotion, error) {
	f, err := d.record(raw)
	if err != nil {
		return VisualMotion{}, err
	}
	vm := VisualMotion{
		Title:         optional(f, "title", decodeString),
		Icon:          optional(f, "icon", decodeMotionIcon),
		InitialToggle: optional(f, "initial_toggle", decodeBool),
		Variant:       required(f, "variant", decodeMotionVariant),
		Color:         required(f, "color", decodeMotionColor),
		Motion:        required(f, "motion", decodeMotion),
	}
	if f.err != nil {
		return VisualMotion{}, f.err
	}
	return vm, nil
}

// MotionIcon is the icon shown as part of a motion. MotionIconUnknown does not
// mean "no icon": the client shows a fallback glyph.
type MotionIcon uint8

const (
	MotionIconUnknown MotionIcon = iota
	MotionIconComment
	MotionIconLike
	MotionIconModeration
	MotionIconPin
	MotionIconShare
	MotionIconToggle
)

var motionIconNames = []string{unknownTag, "Comment", "Like", "Moderation", "Pin", "Share", "Toggle"}

func (i MotionIcon) String() string { return enumName(i, motionIconNames) }

func (i MotionIcon) MarshalJSON() ([]byte, error) { return marshalEnum(i, motionIconNames) }

func (i *MotionIcon) UnmarshalJSON(data []byte) error {
	return unmarshalInto(i, data, decodeMotionIcon)
}

func decodeMotionIcon(d decoder, raw json.RawMessage) (MotionIcon, error) {
	return decodeEnum[MotionIcon](d, raw, motionIconNames)
}

// MotionVariant is how a motion is drawn.
type MotionVariant uint8

const (
	MotionVariantUnknown MotionVariant = iota
	// MotionVariantButton is a filled rectangle with text and icon inside.
	MotionVariantButton
	MotionVariantButtonBorder
	// MotionVariantLink is bare text with no background.
	MotionVariantLink
	MotionVariantLinkHoverButton
	MotionVariantLinkHoverButtonBorder
)

var motionVariantNames = []string{unknownTag, "Button", "ButtonBorder", "Link", "LinkHoverButton", "LinkHoverButtonBorder"}

func (v MotionVariant) String() string { return enumName(v, motionVariantNames) }

func (v MotionVariant) MarshalJSON() ([]byte, error) { return marshalEnum(v, motionVariantNames) }

func (v *MotionVariant) UnmarshalJSON(data []byte) error {
	return unmarshalInto(v, data, decodeMotionVariant)
}

func decodeMotionVariant(d decoder, raw json.RawMessage) (MotionVariant, error) {
	return decodeEnum[MotionVariant](d, raw, motionVariantNames)
}

// MotionColor is the color a motion is drawn in.
type MotionColor uint8

const (
	MotionColorUnknown MotionColor = iota
	MotionColorPrimary
	MotionColorSecondary
	MotionColorText
)

var motionColorNames = []string{unknownTag, "Primary", "Secondary", "Text"}

func (c MotionColor) String() string { return enumName(c, motionColorNames) }

func (c MotionColor) MarshalJSON() ([]byte, error) { return marshalEnum(c, motionColorNames) }

func (c *MotionColor) UnmarshalJSON(data []byte) error {
	return unmarshalInto(c, data, decodeMotionColor)
}

func decodeMotionColor(d decoder, raw json.RawMessage) (MotionColor, error) {
	return decodeEnum[MotionColor](d, raw, motionColorNames)
}

// MotionKind is the wire tag of a Motion variant.
type MotionKind string

const (
	MotionKindUnknown MotionKind = unknownTag
	MotionKindAPICall MotionKind = "ApiCall"
	MotionKindHref    MotionKind = "Href"
	MotionKindShare   MotionKind = "Share"
	MotionKindSubmit  MotionKind = "Submit"
)

// MotionValue is implemented by *MotionAPICall, *MotionHref, *MotionShare and
// *MotionSubmit.
type MotionValue interface {
	motionKind() MotionKind
}

// Motion is what to do when something is interacted with. A nil Value is an
// unrecognised motion, which is also the zero Motion.
type Motion struct {
	Value MotionValue
}

// Kind returns the variant tag, MotionKindUnknown for a nil Value.
func (m Motion) Kind() MotionKind {
	if m.Value == nil {
		return MotionKindUnknown
	}
	return m.Value.motionKind()
}

func (m Motion) MarshalJSON() ([]byte, error) {
	if m.Value == nil {
		return unknownJSON(), nil
	}
	return encodeVariant(string(m.Value.motionKind()), m.Value)
}

func (m *Motion) UnmarshalJSON(data []byte) error {
	return unmarshalInto(m, data, decodeMotion)
}

func motionVariant(tag string) func(decoder, json.RawMessage) (MotionValue, error) {
	switch MotionKind(tag) {
	case MotionKindAPICall:
		return as[MotionValue](decodeMotionAPICall)
	case MotionKindHref:
		return as[MotionValue](decodeMotionHref)
	case MotionKindShare:
		return as[MotionValue](decodeMotionShare)
	case MotionKindSubmit:
		return as[MotionValue](decodeMotionSubmit)
	}
	return nil
}

func decodeMotion(d decoder, raw json.RawMessage) (Motion, error) {
	v, err := decodeUnion(d, raw, motionVariant)
	if err != nil {
		return Motion{}, err
	}
	return Motion{Value: v}, nil
}

// MotionAPICall calls the motion_interaction endpoint and acts on the response.
type MotionAPICall struct {
	// NewToggle, when set, is the toggle state to switch to.
	NewToggle *bool   `json:"new_toggle"`
	Modal     *Modal  `json:"modal"`
	Redirect  *string `json:"redirect"`
}

func (*MotionAPICall) motionKind() MotionKind { return MotionKindAPICall }

func decodeMotionAPICall(d decoder, raw json.RawMessage) (MotionAPICall, error) {
	f, err := d.record(raw)
	if err != nil {
		return MotionAPICall{}, err
	}
	call := MotionAPICall{
		NewToggle: optional(f, "new_toggle", decodeBool),
		Modal:     optional(f, "modal", decodeModal),
		Redirect:  optional(f, "redirect", decodeString),
	}
	if f.err != nil {
		return MotionAPICall{}, f.err
	}
	return call, nil
}

// MotionHref navigates to URI.
type MotionHref struct {
	URI string `json:"uri"`
	// NewTab opens the link with target="_blank".
	NewTab *bool `json:"new_tab"`
}

func (*MotionHref) motionKind() MotionKind { return MotionKindHref }

func decodeMotionHref(d decoder, raw json.RawMessage) (MotionHref, error) {
	f, err := d.record(raw)
	if err != nil {
		return MotionHref{}, err
	}
	href := MotionHref{
		URI:    required(f, "uri", decodeString),
		NewTab: optional(f, "new_tab", decodeBool),
	}
	if f.err != nil {
		return MotionHref{}, f.err
	}
	return href, nil
}

// MotionShare opens the share dialogue.
type MotionShare struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
	URL   *string `json:"url"`
}

func (*MotionShare) motionKind() MotionKind { return MotionKindShare }

func decodeMotionShare(d decoder, raw json.RawMessage) (MotionShare, error) {
	f, err := d.record(raw)
	if err != nil {
		return MotionShare{}, err
	}
	share := MotionShare{
		Title: optional(f, "title", decodeString),
		Text:  optional(f, "text", decodeString),
		URL:   optional(f, "url", decodeString),
	}
	if f.err != nil {
		return MotionShare{}, f.err
	}
	return share, nil
}

// MotionSubmit submits the enclosing form.
type MotionSubmit struct{}

func (*MotionSubmit) motionKind() MotionKind { return MotionKindSubmit }

func decodeMotionSubmit(d decoder, raw json.RawMessage) (MotionSubmit, error) {
	if _, err := d.record(raw); err != nil {
		return MotionSubmit{}, err
	}
	return MotionSubmit{}, nil
}
