package imagex

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// BytesToDataURI wraps raw bytes into a base64 data URI.
func BytesToDataURI(b []byte, mime string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}

// DataURIToBytes splits a base64 data URI into its MIME type and payload.
func DataURIToBytes(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	mime := strings.TrimSuffix(meta, ";base64")

	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mime, b, nil
}
