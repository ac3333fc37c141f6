// Package httpsig signs and verifies HTTP requests using the
// draft-cavage-http-signatures-10 scheme.
package httpsig

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RequestTarget is the pseudo-header covering the request method and path.
const RequestTarget = "(request-target)"

// Sign signs the request as keyID. GET requests cover host, date and accept;
// POST requests cover date and a digest of the body.
func Sign(req *http.Request, keyID string, privateKey crypto.PrivateKey, body []byte) error {
	rsaKey, ok := privateKey.(*rsa.PrivateKey)
	if !ok {
		return fmt.Errorf("httpsig: unsupported private key type %T", privateKey)
	}

	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	headers := []string{RequestTarget}
	switch req.Method {
	case http.MethodGet:
		headers = append(headers, "host", "date", "accept")
	case http.MethodPost:
		setDigest(req, body)
		headers = append(headers, "date", "digest")
	}

	signed, err := signingString(req, headers)
	if err != nil {
		return err
	}
	digest := sha256.Sum256([]byte(signed))
	sig, err := rsa.SignPKCS1v15(rand.Reader, rsaKey, crypto.SHA256, digest[:])
	if err != nil {
		return err
	}
	req.Header.Set("Signature", fmt.Sprintf(`keyId=%q,algorithm="rsa-sha256",headers=%q,signature=%q`,
		keyID, strings.Join(headers, " "), base64.StdEncoding.EncodeToString(sig)))
	return nil
}

// signingString builds the newline separated list of header lines the
// signature covers.
func signingString(req *http.Request, headers []string) (string, error) {
	lines := make([]string, 0, len(headers))
	for _, header := range headers {
		switch name := strings.ToLower(header); name {
		case RequestTarget:
			target := strings.ToLower(req.Method) + " " + req.URL.Path
			if req.URL.RawQuery != "" {
				target += "?" + req.URL.RawQuery
			}
			lines = append(lines, RequestTarget+": "+target)
		case "host":
			lines = append(lines, "host: "+req.Host)
		case "date", "accept", "digest":
			lines = append(lines, name+": "+req.Header.Get(name))
		default:
			return "", fmt.Errorf("httpsig: cannot sign header %q", header)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func setDigest(req *http.Request, body []byte) {
	digest := sha256.Sum256(body)
	req.Header.Set("Digest", "SHA-256="+base64.StdEncoding.EncodeToString(digest[:]))
}
