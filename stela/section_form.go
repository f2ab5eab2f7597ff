package stela

import "encoding/json"

// SectionForm is something to fill out and submit.
type SectionForm struct {
	Header    *string     `json:"header"`
	Subheader *string     `json:"subheader"`
	Inputs    []FormInput `json:"inputs"`
}

func (*SectionForm) sectionKind() SectionKind { return SectionKindForm }

func (s SectionForm) MarshalJSON() ([]byte, error) {
	type wire SectionForm
	w := wire(s)
	w.Inputs = orEmpty(w.Inputs)
	return json.Marshal(w)
}

func decodeSectionForm(d decoder, raw json.RawMessage) (SectionForm, error) {
	f, err := d.record(raw)
	if err != nil {
		return SectionForm{}, err
	}
	s := SectionForm{
		Header:    optional(f, "header", decodeString),
		Subheader: optional(f, "subheader", decodeString),
		Inputs:    required(f, "inputs", sliceOf(decodeFormInput)),
	}
	if f.err != nil {
		return SectionForm{}, f.err
	}
	return s, nil
}

// FormInput is one input field of a form.
type FormInput struct {
	Title   *string          `json:"title"`
	Variant FormInputVariant `json:"variant"`
}

func (i *FormInput) UnmarshalJSON(data []byte) error {
	return unmarshalInto(i, data, decodeFormInput)
}

func decodeFormInput(d decoder, raw json.RawMessage) (FormInput, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInput{}, err
	}
	in := FormInput{
		Title:   optional(f, "title", decodeString),
		Variant: required(f, "variant", decodeFormInputVariant),
	}
	if f.err != nil {
		return FormInput{}, f.err
	}
	return in, nil
}

// FormInputKind is the wire tag of a FormInputVariant.
type FormInputKind string

const (
	FormInputKindUnknown     FormInputKind = unknownTag
	FormInputKindCheckbox    FormInputKind = "Checkbox"
	FormInputKindCfTurnstile FormInputKind = "CfTurnstile"
	FormInputKindImage       FormInputKind = "Image"
	FormInputKindMarkdown    FormInputKind = "Markdown"
	FormInputKindMotions     FormInputKind = "Motions"
	FormInputKindRadio       FormInputKind = "Radio"
	FormInputKindSubsection  FormInputKind = "Subsection"
	FormInputKindTabs        FormInputKind = "Tabs"
	FormInputKindText        FormInputKind = "Text"
)

// FormInputValue is implemented by the *FormInput* payload types.
type FormInputValue interface {
	formInputKind() FormInputKind
}

// FormInputVariant is what kind of input a field is, with the extra info that
// kind needs. Subsection and Tabs nest further inputs.
type FormInputVariant struct {
	Value FormInputValue
}

func (v FormInputVariant) Kind() FormInputKind {
	if v.Value == nil {
		return FormInputKindUnknown
	}
	return v.Value.formInputKind()
}

func (v FormInputVariant) MarshalJSON() ([]byte, error) {
	if v.Value == nil {
		return unknownJSON(), nil
	}
	return encodeVariant(string(v.Value.formInputKind()), v.Value)
}

func (v *FormInputVariant) UnmarshalJSON(data []byte) error {
	return unmarshalInto(v, data, decodeFormInputVariant)
}

func formInputVariant(tag string) func(decoder, json.RawMessage) (FormInputValue, error) {
	switch FormInputKind(tag) {
	case FormInputKindCheckbox:
		return as[FormInputValue](decodeFormInputCheckbox)
	case FormInputKindCfTurnstile:
		return as[FormInputValue](decodeFormInputCfTurnstile)
	case FormInputKindImage:
		return as[FormInputValue](decodeFormInputImage)
	case FormInputKindMarkdown:
		return as[FormInputValue](decodeFormInputMarkdown)
	case FormInputKindMotions:
		return as[FormInputValue](decodeFormInputMotions)
	case FormInputKindRadio:
		return as[FormInputValue](decodeFormInputRadio)
	case FormInputKindSubsection:
		return as[FormInputValue](decodeFormInputSubsection)
	case FormInputKindTabs:
		return as[FormInputValue](decodeFormInputTabs)
	case FormInputKindText:
		return as[FormInputValue](decodeFormInputText)
	}
	return nil
}

func decodeFormInputVariant(d decoder, raw json.RawMessage) (FormInputVariant, error) {
	v, err := decodeUnion(d, raw, formInputVariant)
	if err != nil {
		return FormInputVariant{}, err
	}
	return FormInputVariant{Value: v}, nil
}

// FormInputCheckbox toggles on or off.
type FormInputCheckbox struct {
	Name           string `json:"name"`
	DefaultChecked *bool  `json:"default_checked"`
}

func (*FormInputCheckbox) formInputKind() FormInputKind { return FormInputKindCheckbox }

func decodeFormInputCheckbox(d decoder, raw json.RawMessage) (FormInputCheckbox, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputCheckbox{}, err
	}
	c := FormInputCheckbox{
		Name:           required(f, "name", decodeString),
		DefaultChecked: optional(f, "default_checked", decodeBool),
	}
	if f.err != nil {
		return FormInputCheckbox{}, f.err
	}
	return c, nil
}

// FormInputCfTurnstile is a Cloudflare Turnstile challenge. Name overrides the
// form-data key of the challenge response.
type FormInputCfTurnstile struct {
	SiteKey string  `json:"site_key"`
	Name    *string `json:"name"`
}

func (*FormInputCfTurnstile) formInputKind() FormInputKind { return FormInputKindCfTurnstile }

func decodeFormInputCfTurnstile(d decoder, raw json.RawMessage) (FormInputCfTurnstile, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputCfTurnstile{}, err
	}
	t := FormInputCfTurnstile{
		SiteKey: required(f, "site_key", decodeString),
		Name:    optional(f, "name", decodeString),
	}
	if f.err != nil {
		return FormInputCfTurnstile{}, f.err
	}
	return t, nil
}

// FormInputImage uploads an image.
type FormInputImage struct {
	Name         *string           `json:"name"`
	PreviewStyle ImagePreviewStyle `json:"preview_style"`
}

func (*FormInputImage) formInputKind() FormInputKind { return FormInputKindImage }

func decodeFormInputImage(d decoder, raw json.RawMessage) (FormInputImage, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputImage{}, err
	}
	img := FormInputImage{
		Name:         optional(f, "name", decodeString),
		PreviewStyle: required(f, "preview_style", decodeImagePreviewStyle),
	}
	if f.err != nil {
		return FormInputImage{}, f.err
	}
	return img, nil
}

// ImagePreviewStyle is how an image is shown after upload.
type ImagePreviewStyle uint8

const (
	ImagePreviewStyleUnknown ImagePreviewStyle = iota
	// ImagePreviewStyleLargeRectangle spans the full form width.
	ImagePreviewStyleLargeRectangle
	ImagePreviewStyleThumbnailRect
	ImagePreviewStyleThumbnailCircle
)

var imagePreviewStyleNames = []string{unknownTag, "LargeRectangle", "ThumbnailRect", "ThumbnailCircle"}

func (s ImagePreviewStyle) String() string { return enumName(s, imagePreviewStyleNames) }

func (s ImagePreviewStyle) MarshalJSON() ([]byte, error) {
	return marshalEnum(s, imagePreviewStyleNames)
}

func (s *ImagePreviewStyle) UnmarshalJSON(data []byte) error {
	return unmarshalInto(s, data, decodeImagePreviewStyle)
}

func decodeImagePreviewStyle(d decoder, raw json.RawMessage) (ImagePreviewStyle, error) {
	return decodeEnum[ImagePreviewStyle](d, raw, imagePreviewStyleNames)
}

// FormInputMarkdown is a large markdown body.
type FormInputMarkdown struct {
	Name      string `json:"name"`
	LengthMin *int32 `json:"length_min"`
	LengthMax *int32 `json:"length_max"`
}

func (*FormInputMarkdown) formInputKind() FormInputKind { return FormInputKindMarkdown }

func decodeFormInputMarkdown(d decoder, raw json.RawMessage) (FormInputMarkdown, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputMarkdown{}, err
	}
	m := FormInputMarkdown{
		Name:      required(f, "name", decodeString),
		LengthMin: optional(f, "length_min", decodeInt32),
		LengthMax: optional(f, "length_max", decodeInt32),
	}
	if f.err != nil {
		return FormInputMarkdown{}, f.err
	}
	return m, nil
}

// FormInputMotions is a row (or column) of buttons inside a form.
type FormInputMotions struct {
	VerticalList *bool          `json:"vertical_list"`
	Motions      []VisualMotion `json:"motions"`
}

func (*FormInputMotions) formInputKind() FormInputKind { return FormInputKindMotions }

func (m FormInputMotions) MarshalJSON() ([]byte, error) {
	type wire FormInputMotions
	w := wire(m)
	w.Motions = orEmpty(w.Motions)
	return json.Marshal(w)
}

func decodeFormInputMotions(d decoder, raw json.RawMessage) (FormInputMotions, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputMotions{}, err
	}
	m := FormInputMotions{
		VerticalList: optional(f, "vertical_list", decodeBool),
		Motions:      required(f, "motions", sliceOf(decodeVisualMotion)),
	}
	if f.err != nil {
		return FormInputMotions{}, f.err
	}
	return m, nil
}

// FormInputRadio selects exactly one of several options.
type FormInputRadio struct {
	Name    string        `json:"name"`
	Options []RadioButton `json:"options"`
}

func (*FormInputRadio) formInputKind() FormInputKind { return FormInputKindRadio }

func (r FormInputRadio) MarshalJSON() ([]byte, error) {
	type wire FormInputRadio
	w := wire(r)
	w.Options = orEmpty(w.Options)
	return json.Marshal(w)
}

func decodeFormInputRadio(d decoder, raw json.RawMessage) (FormInputRadio, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputRadio{}, err
	}
	r := FormInputRadio{
		Name:    required(f, "name", decodeString),
		Options: required(f, "options", sliceOf(decodeRadioButton)),
	}
	if f.err != nil {
		return FormInputRadio{}, f.err
	}
	return r, nil
}

type RadioButton struct {
	Value string  `json:"value"` // form-data value
	Title *string `json:"title"`
}

func (b *RadioButton) UnmarshalJSON(data []byte) error {
	return unmarshalInto(b, data, decodeRadioButton)
}

func decodeRadioButton(d decoder, raw json.RawMessage) (RadioButton, error) {
	f, err := d.record(raw)
	if err != nil {
		return RadioButton{}, err
	}
	b := RadioButton{
		Value: required(f, "value", decodeString),
		Title: optional(f, "title", decodeString),
	}
	if f.err != nil {
		return RadioButton{}, f.err
	}
	return b, nil
}

// FormInputSubsection is a smaller titled form inside the full form.
type FormInputSubsection struct {
	Inputs []FormInput `json:"inputs"`
}

func (*FormInputSubsection) formInputKind() FormInputKind { return FormInputKindSubsection }

func (s FormInputSubsection) MarshalJSON() ([]byte, error) {
	type wire FormInputSubsection
	w := wire(s)
	w.Inputs = orEmpty(w.Inputs)
	return json.Marshal(w)
}

func decodeFormInputSubsection(d decoder, raw json.RawMessage) (FormInputSubsection, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputSubsection{}, err
	}
	s := FormInputSubsection{Inputs: required(f, "inputs", sliceOf(decodeFormInput))}
	if f.err != nil {
		return FormInputSubsection{}, f.err
	}
	return s, nil
}

// FormInputTabs splits inputs across tabs; only one tab is visible at a time.
type FormInputTabs struct {
	Tabs []FormTab `json:"tabs"`
}

func (*FormInputTabs) formInputKind() FormInputKind { return FormInputKindTabs }

func (t FormInputTabs) MarshalJSON() ([]byte, error) {
	type wire FormInputTabs
	w := wire(t)
	w.Tabs = orEmpty(w.Tabs)
	return json.Marshal(w)
}

func decodeFormInputTabs(d decoder, raw json.RawMessage) (FormInputTabs, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputTabs{}, err
	}
	t := FormInputTabs{Tabs: required(f, "tabs", sliceOf(decodeFormTab))}
	if f.err != nil {
		return FormInputTabs{}, f.err
	}
	return t, nil
}

type FormTab struct {
	Title  *string     `json:"title"`
	Inputs []FormInput `json:"inputs"`
}

func (t FormTab) MarshalJSON() ([]byte, error) {
	type wire FormTab
	w := wire(t)
	w.Inputs = orEmpty(w.Inputs)
	return json.Marshal(w)
}

func (t *FormTab) UnmarshalJSON(data []byte) error {
	return unmarshalInto(t, data, decodeFormTab)
}

func decodeFormTab(d decoder, raw json.RawMessage) (FormTab, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormTab{}, err
	}
	t := FormTab{
		Title:  optional(f, "title", decodeString),
		Inputs: required(f, "inputs", sliceOf(decodeFormInput)),
	}
	if f.err != nil {
		return FormTab{}, f.err
	}
	return t, nil
}

// FormInputText is a single-line text field.
type FormInputText struct {
	Name      *string `json:"name"`
	LengthMin *int32  `json:"length_min"`
	LengthMax *int32  `json:"length_max"`
	// Esperanto adds the x-system converter button.
	Esperanto bool        `json:"esperanto"`
	Filter    *TextFilter `json:"filter"`
}

func (*FormInputText) formInputKind() FormInputKind { return FormInputKindText }

func decodeFormInputText(d decoder, raw json.RawMessage) (FormInputText, error) {
	f, err := d.record(raw)
	if err != nil {
		return FormInputText{}, err
	}
	t := FormInputText{
		Name:      optional(f, "name", decodeString),
		LengthMin: optional(f, "length_min", decodeInt32),
		LengthMax: optional(f, "length_max", decodeInt32),
		Esperanto: required(f, "esperanto", decodeBool),
		Filter:    optional(f, "filter", decodeTextFilter),
	}
	if f.err != nil {
		return FormInputText{}, f.err
	}
	return t, nil
}
