package sign

import (
	"errors"
	"strings"
	"testing"

	"github.com/petrijr/corezoid/pkg/api"
)

// Conformance vectors pinned once against an independent reference
// implementation of the protocol. Canonical input for all of them is
// the byte form of {"a":1,"b":2}.
const (
	vectorCanonical = `{"a":1,"b":2}`

	vectorSHA256       = "6f3ddcf0e889a3f2e4c129169e1fdef0766447fe8cbb82d41093a920958ff40e"
	vectorSHA256WithTS = "348211cff95a6a9c1ceb94bff9f418c38b3966e589d5d9f762b8b142c956628a"
	vectorBlake2b256   = "498f42c25c914d9ae209d884fb1524758ec334bb51879909e306a7808d50a49a"
	vectorTimestamp    = "1700000000"
)

func TestOperationKnownVectorSHA256(t *testing.T) {
	sig, err := Operation(HMACSHA256, "S", "L", []byte(vectorCanonical), "")
	if err != nil {
		t.Fatalf("Operation failed: %v", err)
	}
	if sig != vectorSHA256 {
		t.Fatalf("signature mismatch:\n got %s\nwant %s", sig, vectorSHA256)
	}
}

func TestOperationKnownVectorWithTimestamp(t *testing.T) {
	sig, err := Operation(HMACSHA256, "S", "L", []byte(vectorCanonical), vectorTimestamp)
	if err != nil {
		t.Fatalf("Operation failed: %v", err)
	}
	if sig != vectorSHA256WithTS {
		t.Fatalf("signature mismatch:\n got %s\nwant %s", sig, vectorSHA256WithTS)
	}
}

func TestOperationKnownVectorBlake2b(t *testing.T) {
	sig, err := Operation(HMACBlake2b256, "S", "L", []byte(vectorCanonical), "")
	if err != nil {
		t.Fatalf("Operation failed: %v", err)
	}
	if sig != vectorBlake2b256 {
		t.Fatalf("signature mismatch:\n got %s\nwant %s", sig, vectorBlake2b256)
	}
}

func TestOperationRejectsMissingCredentials(t *testing.T) {
	for name, call := range map[string]func() (string, error){
		"empty secret": func() (string, error) {
			return Operation(HMACSHA256, "", "L", []byte(vectorCanonical), "")
		},
		"empty login": func() (string, error) {
			return Operation(HMACSHA256, "S", "", []byte(vectorCanonical), "")
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := call()
			var serr *api.SigningError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *api.SigningError, got %T: %v", err, err)
			}
		})
	}
}

func TestOperationRejectsUnknownAlgorithm(t *testing.T) {
	_, err := Operation(Algorithm(99), "S", "L", []byte(vectorCanonical), "")
	var serr *api.SigningError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *api.SigningError, got %T: %v", err, err)
	}
}

func TestRequestSignatureRoundTrip(t *testing.T) {
	body := []byte(`{"ops":[]}`)
	sig, err := Request(HMACSHA256, "S", vectorTimestamp, body)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if !VerifyRequest(HMACSHA256, "S", sig, vectorTimestamp, body) {
		t.Fatal("VerifyRequest rejected a valid signature")
	}
	if VerifyRequest(HMACSHA256, "S", sig, vectorTimestamp, []byte(`{"ops":[{}]}`)) {
		t.Fatal("VerifyRequest accepted a signature over different bytes")
	}
	if VerifyRequest(HMACSHA256, "other", sig, vectorTimestamp, body) {
		t.Fatal("VerifyRequest accepted a signature made with a different secret")
	}
}

func TestErrorsNeverContainSecret(t *testing.T) {
	_, err := Operation(HMACSHA256, "super-secret", "", []byte(vectorCanonical), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Fatalf("error message leaks secret: %q", err.Error())
	}
}
