package pemcsv

import (
	"encoding/asn1"
	"fmt"
	"log/slog"

	"github.com/smallstep/pkcs7"
)

// CMS content type OIDs (RFC 5652).
var (
	oidData       = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 1}
	oidSignedData = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 7, 2}
)

// contentInfo is the top-level CMS structure:
//
//	ContentInfo ::= SEQUENCE {
//	  contentType ContentType,
//	  content [0] EXPLICIT ANY DEFINED BY contentType }
type contentInfo struct {
	ContentType asn1.ObjectIdentifier
	Content     asn1.RawValue `asn1:"optional,explicit,tag:0"`
}

// Payload is the result of best-effort CMS content recovery. Parsed
// indicates the DER decoded as a recognized ContentInfo; Content holds
// the inner content bytes when it did, or the raw input bytes when it
// did not. Either way the bytes are searched for XML downstream.
type Payload struct {
	Parsed  bool
	Content []byte
}

// ExtractContent attempts to parse der as a CMS ContentInfo and
// recover its inner content bytes. Structural parse failure is not an
// error: the container only needs to carry XML somewhere, so anything
// unrecognized degrades to scanning the raw bytes.
func ExtractContent(der []byte) Payload {
	var ci contentInfo
	if _, err := asn1.Unmarshal(der, &ci); err != nil {
		slog.Warn("CMS parsing failed, falling back to raw byte scan", "error", err)
		return Payload{Content: der}
	}

	switch {
	case ci.ContentType.Equal(oidData):
		return Payload{Parsed: true, Content: dataContent(ci.Content)}
	case ci.ContentType.Equal(oidSignedData):
		return signedDataContent(der)
	default:
		slog.Warn("unrecognized CMS content type, falling back to raw byte scan",
			"oid", ci.ContentType.String())
		return Payload{Content: der}
	}
}

// dataContent unwraps the OCTET STRING inside a data-type ContentInfo.
// Content that is not an OCTET STRING is used as-is.
func dataContent(raw asn1.RawValue) []byte {
	var inner []byte
	if _, err := asn1.Unmarshal(raw.Bytes, &inner); err == nil {
		return inner
	}
	return raw.Bytes
}

// signedDataContent recovers the encapsulated content from a
// signedData-type ContentInfo. A signedData with no encapsulated
// content (a detached or certs-only structure) yields its stringified
// form so at least structural detail reaches the XML search.
func signedDataContent(der []byte) Payload {
	p7, err := pkcs7.Parse(der)
	if err != nil {
		slog.Warn("signedData parsing failed, falling back to raw byte scan", "error", err)
		return Payload{Content: der}
	}
	if len(p7.Content) > 0 {
		return Payload{Parsed: true, Content: p7.Content}
	}
	slog.Debug("signedData has no encapsulated content")
	return Payload{Parsed: true, Content: fmt.Appendf(nil, "%+v", p7)}
}
