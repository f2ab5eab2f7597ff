package stela_test

import (
	"encoding/json"
	"testing"

	"github.com/Anaso-Internacia/anaso-site-api-models/stela"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFilterWire(t *testing.T) {
	var v stela.FormInputVariant
	require.NoError(t, json.Unmarshal([]byte(`{"Text": {"esperanto": false, "filter": 13}}`), &v))

	text, ok := v.Value.(*stela.FormInputText)
	require.True(t, ok)
	require.NotNil(t, text.Filter)
	assert.Equal(t, stela.TextFilterAlphaASCII|stela.TextFilterNumeric|stela.TextFilterDash, *text.Filter)
	assert.Equal(t, []string{"ALPHA_ASCII", "NUMERIC", "DASH"}, text.Filter.Names())
	assert.Equal(t, "ALPHA_ASCII | NUMERIC | DASH", text.Filter.String())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Text": {"name": null, "length_min": null, "length_max": null, "esperanto": false, "filter": 13}}`, string(data))
}

func TestTextFilterKeepsUnknownBits(t *testing.T) {
	var f stela.TextFilter
	require.NoError(t, json.Unmarshal([]byte(`1025`), &f))
	assert.Equal(t, stela.TextFilter(1025), f)
	assert.Equal(t, stela.TextFilterAlphaASCII, f.Known())
	assert.Equal(t, []string{"ALPHA_ASCII"}, f.Names())

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `1025`, string(data))
}

func TestTextFilterRejects(t *testing.T) {
	for _, payload := range []string{`-1`, `"13"`, `1.5`, `4294967296`} {
		var f stela.TextFilter
		assert.Error(t, json.Unmarshal([]byte(payload), &f), payload)
	}
}

func TestTextFilterAllows(t *testing.T) {
	tests := []struct {
		filter stela.TextFilter
		input  string
		want   bool
	}{
		{stela.TextFilterAlphaASCII, "Saluton", true},
		{stela.TextFilterAlphaASCII, "ĉiuj", false},
		{stela.TextFilterAlphaEO, "ĉiuj", true},
		{stela.TextFilterAlphaEO, "ĈEĤIO", true},
		{stela.TextFilterAlphaEO, "xyz", false},
		{stela.TextFilterAlphaASCII | stela.TextFilterNumeric | stela.TextFilterDash, "user-42", true},
		{stela.TextFilterAlphaASCII | stela.TextFilterNumeric, "user_42", false},
		{stela.TextFilterUnderscore | stela.TextFilterPeriod | stela.TextFilterSpace, "_. _", true},
		{0, "", true},
		{0, "a", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.filter.AllowsString(tt.input), "%s / %q", tt.filter, tt.input)
	}
}
