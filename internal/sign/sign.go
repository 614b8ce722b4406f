// Package sign computes and verifies the keyed-hash signatures the
// engine authenticates requests with.
package sign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/petrijr/corezoid/pkg/api"
)

// Algorithm selects the keyed hash used for signatures. Values are
// pinned by the engine's protocol version.
type Algorithm int

const (
	// HMACSHA256 is protocol version 2, the default.
	HMACSHA256 Algorithm = 2
	// HMACBlake2b256 is protocol version 3.
	HMACBlake2b256 Algorithm = 3
)

// DefaultAlgorithm is the protocol-pinned default.
const DefaultAlgorithm = HMACSHA256

// Valid reports whether a is a known protocol version.
func (a Algorithm) Valid() bool {
	return a == HMACSHA256 || a == HMACBlake2b256
}

func (a Algorithm) newHash() func() hash.Hash {
	switch a {
	case HMACBlake2b256:
		return func() hash.Hash {
			h, _ := blake2b.New256(nil)
			return h
		}
	default:
		return sha256.New
	}
}

// Operation computes the per-operation signature: a hex-encoded keyed
// hash over timestamp + login + canonical, keyed with secret. The
// timestamp may be empty, in which case the signature is a pure
// function of (login, secret, canonical).
//
// Fails with *api.SigningError when secret or login is empty. The
// secret never appears in the returned error.
func Operation(alg Algorithm, secret, login string, canonical []byte, timestamp string) (string, error) {
	if secret == "" {
		return "", &api.SigningError{Reason: "api_secret is empty"}
	}
	if login == "" {
		return "", &api.SigningError{Reason: "api_login is empty"}
	}
	if !alg.Valid() {
		return "", &api.SigningError{Reason: "unknown hash algorithm version"}
	}
	mac := hmac.New(alg.newHash(), []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(login))
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Request computes the request-level signature carried in the
// X-API-Signature header: a hex-encoded keyed hash over
// timestamp + body, keyed with secret.
func Request(alg Algorithm, secret, timestamp string, body []byte) (string, error) {
	if secret == "" {
		return "", &api.SigningError{Reason: "api_secret is empty"}
	}
	if !alg.Valid() {
		return "", &api.SigningError{Reason: "unknown hash algorithm version"}
	}
	mac := hmac.New(alg.newHash(), []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// VerifyRequest checks a request-level signature in constant time.
// It is used to authenticate engine callbacks.
func VerifyRequest(alg Algorithm, secret, signature, timestamp string, body []byte) bool {
	expected, err := Request(alg, secret, timestamp, body)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(expected))
}
