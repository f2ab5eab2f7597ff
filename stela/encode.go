package stela

import (
	"bytes"
	"encoding/json"
)

// unknownTag is the explicit sentinel every union and enum encodes Unknown as.
const unknownTag = "Unknown"

func unknownJSON() []byte {
	return []byte(`"` + unknownTag + `"`)
}

// encodeVariant writes {"tag": payload}. A nil payload has nothing to carry
// and is written as the Unknown sentinel.
func encodeVariant(tag string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(b, []byte("null")) {
		return unknownJSON(), nil
	}
	return json.Marshal(map[string]json.RawMessage{tag: b})
}

func enumName[E ~uint8](v E, names []string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return names[0]
}

func marshalEnum[E ~uint8](v E, names []string) ([]byte, error) {
	return json.Marshal(enumName(v, names))
}

// orEmpty keeps nil sequences on the wire as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
