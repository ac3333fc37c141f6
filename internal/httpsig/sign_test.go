package httpsig

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"strings"
	"testing"

	gofed "github.com/go-fed/httpsig"
	"github.com/stretchr/testify/require"
)

const keyID = "https://example.com/users/foo#main-key"

func signedGet(t *testing.T) (*http.Request, *rsa.PrivateKey) {
	t.Helper()
	require := require.New(t)

	req, err := http.NewRequest("GET", "https://example.com/users/foo", nil)
	require.NoError(err)
	req.Header.Set("Accept", "application/ld+json")

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(err)
	require.NoError(Sign(req, keyID, privateKey, nil))
	return req, privateKey
}

func TestSignRoundTrip(t *testing.T) {
	require := require.New(t)
	req, privateKey := signedGet(t)

	require.NoError(Verify(req, func(id string) (crypto.PublicKey, error) {
		require.Equal(keyID, id)
		return &privateKey.PublicKey, nil
	}))
}

func TestSignInterop(t *testing.T) {
	require := require.New(t)
	req, privateKey := signedGet(t)

	verifier, err := gofed.NewVerifier(req)
	require.NoError(err)
	require.Equal(keyID, verifier.KeyId())
	err = verifier.Verify(&privateKey.PublicKey, gofed.RSA_SHA256)
	require.NoError(err, "req.Signature: %s", req.Header.Get("Signature"))
}

func TestSignPostCoversBody(t *testing.T) {
	require := require.New(t)

	body := []byte(`{"type":"Accept"}`)
	req, err := http.NewRequest("POST", "https://example.com/users/foo/inbox", strings.NewReader(string(body)))
	require.NoError(err)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(err)
	require.NoError(Sign(req, keyID, privateKey, body))
	require.NotEmpty(req.Header.Get("Digest"))

	keyFn := func(string) (crypto.PublicKey, error) { return &privateKey.PublicKey, nil }
	require.NoError(Verify(req, keyFn))

	// a tampered digest no longer verifies
	req.Header.Set("Digest", "SHA-256=AAAA")
	require.Error(Verify(req, keyFn))
}

func TestVerifyRejectsTamperedRequests(t *testing.T) {
	require := require.New(t)
	req, privateKey := signedGet(t)
	keyFn := func(string) (crypto.PublicKey, error) { return &privateKey.PublicKey, nil }

	req.URL.Path = "/users/bar"
	require.Error(Verify(req, keyFn))
}
