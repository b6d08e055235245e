// Package pemcsv extracts embedded XML payloads from PEM-encoded
// CMS/PKCS#7 containers and flattens them into single-row tabular
// records suitable for CSV output.
package pemcsv

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrNoArmoredData is returned when no base64 content is found between
// PEM BEGIN/END markers.
var ErrNoArmoredData = errors.New("no base64 content found between PEM markers")

// ExtractArmoredData collects the base64 text between the first
// -----BEGIN and -----END marker lines and decodes it to raw bytes.
// Only the first armored block is considered.
func ExtractArmoredData(pemText string) ([]byte, error) {
	var b64 strings.Builder
	inside := false
	for _, line := range strings.Split(pemText, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-----BEGIN") {
			inside = true
			continue
		}
		if strings.HasPrefix(line, "-----END") {
			break
		}
		if inside {
			b64.WriteString(line)
		}
	}
	if b64.Len() == 0 {
		return nil, ErrNoArmoredData
	}
	data, err := base64.StdEncoding.DecodeString(b64.String())
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	return data, nil
}

// DecodeText converts raw bytes to a string, dropping any byte
// sequences that are not valid UTF-8. It never fails; garbage in the
// surrounding cryptographic structure must not prevent the XML search.
func DecodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

// ExtractXML runs the full extraction pipeline on PEM file text:
// armor strip, base64 decode, CMS content recovery, and XML search.
func ExtractXML(pemText string) (string, error) {
	der, err := ExtractArmoredData(pemText)
	if err != nil {
		return "", err
	}
	payload := ExtractContent(der)
	return LocateXML(DecodeText(payload.Content))
}
