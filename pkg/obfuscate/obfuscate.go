// Package obfuscate reversibly encodes the storefront contact number so it
// never appears in plain text in config files or API payloads. It is a
// deterrent against casual scraping only; the encoding is trivially
// reversible and must not be treated as access control or encryption.
package obfuscate

import (
	"encoding/base64"
	"fmt"
)

// Encode reverses s and base64-encodes the result.
func Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(reverse(s)))
}

// Decode is the inverse of Encode.
func Decode(s string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decode contact: %w", err)
	}
	return reverse(string(raw)), nil
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
