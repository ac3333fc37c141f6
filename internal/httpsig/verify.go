package httpsig

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Verify checks the request's Signature header, resolving the signer's
// public key with keyFn.
func Verify(req *http.Request, keyFn func(keyID string) (crypto.PublicKey, error)) error {
	header := req.Header.Get("Signature")
	if header == "" {
		return errors.New("httpsig: no Signature header")
	}
	params, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}
	if params.algorithm != "rsa-sha256" {
		return fmt.Errorf("httpsig: unsupported algorithm %q", params.algorithm)
	}
	pubKey, err := keyFn(params.keyID)
	if err != nil {
		return err
	}
	rsaKey, ok := pubKey.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("httpsig: unsupported public key type %T", pubKey)
	}

	signed, err := signingString(req, params.headers)
	if err != nil {
		return err
	}
	digest := sha256.Sum256([]byte(signed))
	return rsa.VerifyPKCS1v15(rsaKey, crypto.SHA256, digest[:], params.signature)
}

type signatureParams struct {
	keyID     string
	algorithm string
	headers   []string
	signature []byte
}

func parseSignatureHeader(header string) (*signatureParams, error) {
	var params signatureParams
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("httpsig: malformed signature part %q", part)
		}
		v = strings.Trim(v, `"`)
		switch k {
		case "keyId":
			params.keyID = v
		case "algorithm":
			params.algorithm = v
		case "headers":
			params.headers = strings.Split(v, " ")
		case "signature":
			sig, err := base64.StdEncoding.DecodeString(v)
			if err != nil {
				return nil, fmt.Errorf("httpsig: malformed signature: %w", err)
			}
			params.signature = sig
		default:
			return nil, fmt.Errorf("httpsig: unknown signature part %q", part)
		}
	}
	return &params, nil
}
