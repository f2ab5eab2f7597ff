package stela

import (
	"encoding/json"
	"strings"
)

// TextFilter is an allow-list of character classes for a text input. On the
// wire it is the integer sum of its flags. Bits without a name are kept as
// they are so a filter from a newer server re-encodes unchanged.
type TextFilter uint32

const (
	// TextFilterAlphaASCII allows A-Z in either case.
	TextFilterAlphaASCII TextFilter = 1 << iota
	// TextFilterAlphaEO allows the Esperanto alphabet: no q, w, x or y, hats included.
	TextFilterAlphaEO
	TextFilterNumeric
	TextFilterDash
	TextFilterUnderscore
	TextFilterPeriod
	TextFilterSpace
)

// TextFilterAll is every named flag.
const TextFilterAll = TextFilterAlphaASCII | TextFilterAlphaEO | TextFilterNumeric |
	TextFilterDash | TextFilterUnderscore | TextFilterPeriod | TextFilterSpace

var textFilterNames = []struct {
	flag TextFilter
	name string
}{
	{TextFilterAlphaASCII, "ALPHA_ASCII"},
	{TextFilterAlphaEO, "ALPHA_EO"},
	{TextFilterNumeric, "NUMERIC"},
	{TextFilterDash, "DASH"},
	{TextFilterUnderscore, "UNDERSCORE"},
	{TextFilterPeriod, "PERIOD"},
	{TextFilterSpace, "SPACE"},
}

// Has reports whether every flag in other is set.
func (f TextFilter) Has(other TextFilter) bool {
	return f&other == other
}

// Known drops the bits that have no name.
func (f TextFilter) Known() TextFilter {
	return f & TextFilterAll
}

// Names lists the set flags in bit order.
func (f TextFilter) Names() []string {
	var names []string
	for _, n := range textFilterNames {
		if f.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

func (f TextFilter) String() string {
	return strings.Join(f.Names(), " | ")
}

// Allows reports whether r belongs to one of the set character classes.
func (f TextFilter) Allows(r rune) bool {
	switch {
	case f.Has(TextFilterAlphaASCII) && isASCIILetter(r):
		return true
	case f.Has(TextFilterAlphaEO) && isEsperantoLetter(r):
		return true
	case f.Has(TextFilterNumeric) && r >= '0' && r <= '9':
		return true
	case f.Has(TextFilterDash) && r == '-':
		return true
	case f.Has(TextFilterUnderscore) && r == '_':
		return true
	case f.Has(TextFilterPeriod) && r == '.':
		return true
	case f.Has(TextFilterSpace) && r == ' ':
		return true
	}
	return false
}

// AllowsString reports whether every rune of s passes the filter.
func (f TextFilter) AllowsString(s string) bool {
	for _, r := range s {
		if !f.Allows(r) {
			return false
		}
	}
	return true
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isEsperantoLetter(r rune) bool {
	switch r {
	case 'q', 'w', 'x', 'y', 'Q', 'W', 'X', 'Y':
		return false
	case 'ĉ', 'ĝ', 'ĥ', 'ĵ', 'ŝ', 'ŭ', 'Ĉ', 'Ĝ', 'Ĥ', 'Ĵ', 'Ŝ', 'Ŭ':
		return true
	}
	return isASCIILetter(r)
}

func (f *TextFilter) UnmarshalJSON(data []byte) error {
	return unmarshalInto(f, data, decodeTextFilter)
}

func decodeTextFilter(d decoder, raw json.RawMessage) (TextFilter, error) {
	n, err := decodeUint32(d, raw)
	if err != nil {
		return 0, err
	}
	return TextFilter(n), nil
}
