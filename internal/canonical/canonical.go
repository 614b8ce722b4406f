// Package canonical produces the deterministic byte form of request
// payloads that signatures are computed over.
package canonical

import (
	"bytes"
	"encoding/json"

	"github.com/petrijr/corezoid/pkg/api"
)

// Marshal serializes v into canonical signable bytes: compact JSON with
// object keys in byte-wise sorted order, arrays in given order, UTF-8
// strings without HTML escaping. Two structurally equal values always
// produce identical bytes regardless of map insertion order.
//
// Values that cannot be represented as JSON (NaN or infinite floats,
// cyclic structures, channels, functions) fail with *api.SigningError.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, &api.SigningError{Reason: "payload is not representable as JSON", Err: err}
	}
	// Encoder.Encode terminates the value with a newline; the canonical
	// form has no trailing byte.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
