// Package crypto generates and parses the RSA keypairs actors sign their
// requests with.
package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// A Keypair is a PEM encoded RSA keypair. The public key travels on the wire
// in actor documents; the private key stays with the account.
type Keypair struct {
	PublicKey  []byte // PKIX
	PrivateKey []byte // PKCS#1
}

func GenerateRSAKeypair() (*Keypair, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	publicKey, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Keypair{
		PublicKey: pem.EncodeToMemory(&pem.Block{
			Type:  "PUBLIC KEY",
			Bytes: publicKey,
		}),
		PrivateKey: pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		}),
	}, nil
}

// ParseRSAPrivateKey parses a PEM encoded RSA private key in either PKCS#1
// or PKCS#8 form.
func ParseRSAPrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		return nil, errors.New("crypto: expected RSA PRIVATE KEY pem block")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("crypto: expected *rsa.PrivateKey, got %T", parsed)
	}
	return key, nil
}
