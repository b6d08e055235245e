package pemcsv

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/base64"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/smallstep/pkcs7"
)

// armorPEM wraps raw bytes in a base64 PEM envelope with the given
// block label, 64 characters per line.
func armorPEM(t *testing.T, label string, data []byte) string {
	t.Helper()
	b64 := base64.StdEncoding.EncodeToString(data)
	var sb strings.Builder
	sb.WriteString("-----BEGIN " + label + "-----\n")
	for len(b64) > 64 {
		sb.WriteString(b64[:64] + "\n")
		b64 = b64[64:]
	}
	sb.WriteString(b64 + "\n")
	sb.WriteString("-----END " + label + "-----\n")
	return sb.String()
}

// marshalContentInfo encodes a ContentInfo with the given content type
// OID holding payload in an OCTET STRING.
func marshalContentInfo(t *testing.T, oid []int, payload []byte) ([]byte, error) {
	t.Helper()
	return asn1.Marshal(struct {
		ContentType asn1.ObjectIdentifier
		Content     []byte `asn1:"explicit,tag:0"`
	}{
		ContentType: asn1.ObjectIdentifier(oid),
		Content:     payload,
	})
}

// cmsDataDER encodes payload as a CMS ContentInfo of type data
// (1.2.840.113549.1.7.1).
func cmsDataDER(t *testing.T, payload []byte) []byte {
	t.Helper()
	der, err := marshalContentInfo(t, []int{1, 2, 840, 113549, 1, 7, 1}, payload)
	if err != nil {
		t.Fatalf("marshal CMS data structure: %v", err)
	}
	return der
}

// cmsSignedDataDER builds a real signedData structure over payload,
// signed with a freshly generated self-signed RSA certificate.
func cmsSignedDataDER(t *testing.T, payload []byte) []byte {
	t.Helper()
	cert, key := newSignerCert(t)

	sd, err := pkcs7.NewSignedData(payload)
	if err != nil {
		t.Fatalf("create signedData: %v", err)
	}
	if err := sd.AddSigner(cert, key, pkcs7.SignerInfoConfig{}); err != nil {
		t.Fatalf("add signer: %v", err)
	}
	der, err := sd.Finish()
	if err != nil {
		t.Fatalf("finish signedData: %v", err)
	}
	return der
}

// newSignerCert generates a self-signed RSA certificate for signing
// test signedData structures.
func newSignerCert(t *testing.T) (*x509.Certificate, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate RSA key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test Signer", Organization: []string{"TestOrg"}},
		NotBefore:             time.Now().Add(-1 * time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create signer cert: %v", err)
	}
	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		t.Fatalf("parse signer cert: %v", err)
	}
	return cert, key
}

// mustParseXML parses a document that the test requires to be valid.
func mustParseXML(t *testing.T, doc string) *Element {
	t.Helper()
	root, err := ParseXML(doc)
	if err != nil {
		t.Fatalf("parse XML: %v", err)
	}
	return root
}
