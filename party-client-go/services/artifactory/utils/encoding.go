package utils

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
)

// EncodeParams url-encodes props as a query string, keys in sorted order.
func EncodeParams(props map[string]string) string {
	values := url.Values{}
	for k, v := range props {
		values.Set(k, v)
	}
	return values.Encode()
}

// EncodeProps encodes props the way the properties API expects them: entries joined with '|'.
// The API does not accept '&' as a separator.
func EncodeProps(props map[string]string) string {
	return strings.ReplaceAll(EncodeParams(props), "&", "|")
}

// RenderJson marshals v with ", " and ": " separators, which is the form AQL statements are written in.
func RenderJson(v interface{}) (string, error) {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return "", errorutils.CheckError(err)
	}
	return spaceSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// spaceSeparators expects compact JSON.
func spaceSeparators(compact []byte) string {
	var out strings.Builder
	inString, escaped := false, false
	for _, c := range compact {
		out.WriteByte(c)
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && (c == ',' || c == ':'):
			out.WriteByte(' ')
		}
	}
	return out.String()
}
