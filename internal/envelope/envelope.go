// Package envelope assembles signed request envelopes and interprets
// the engine's responses: building, parsing, and correlating.
package envelope

import (
	"strconv"

	"github.com/petrijr/corezoid/internal/canonical"
	"github.com/petrijr/corezoid/internal/sign"
	"github.com/petrijr/corezoid/pkg/api"
)

// SignedOp is one wire-ready operation object: the operation's own
// fields plus login and sign.
type SignedOp map[string]any

// Envelope is the ordered batch request body. Ops order is identical to
// the order operations were given in; the wire protocol correlates by
// position as well as by ref.
type Envelope struct {
	Ops []SignedOp
}

// BuildConfig carries the credentials and limits Build needs. It is
// threaded through explicitly; the package holds no state.
type BuildConfig struct {
	Login        string
	Secret       string
	Algorithm    sign.Algorithm
	MaxBatchSize int
}

// Build validates the batch, signs each operation, and assembles the
// envelope. It performs no network interaction.
//
// Validation failures return *api.ValidationError, signing failures
// *api.SigningError; in both cases nothing has been sent.
func Build(ops []api.Operation, cfg BuildConfig) (*Envelope, error) {
	if len(ops) == 0 {
		return nil, &api.ValidationError{Reason: "batch is empty"}
	}
	if cfg.MaxBatchSize > 0 && len(ops) > cfg.MaxBatchSize {
		return nil, &api.ValidationError{
			Reason: "batch has " + strconv.Itoa(len(ops)) +
				" operations, maximum is " + strconv.Itoa(cfg.MaxBatchSize),
		}
	}

	seen := make(map[string]struct{}, len(ops))
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return nil, err
		}
		if op.Ref == "" {
			continue
		}
		if _, dup := seen[op.Ref]; dup {
			return nil, &api.ValidationError{Reason: "duplicate ref in batch: " + op.Ref}
		}
		seen[op.Ref] = struct{}{}
	}

	env := &Envelope{Ops: make([]SignedOp, 0, len(ops))}
	for _, op := range ops {
		fields := wireFields(op)
		canon, err := canonical.Marshal(fields)
		if err != nil {
			return nil, err
		}
		sig, err := sign.Operation(cfg.Algorithm, cfg.Secret, cfg.Login, canon, "")
		if err != nil {
			return nil, err
		}
		fields["login"] = cfg.Login
		fields["sign"] = sig
		env.Ops = append(env.Ops, fields)
	}
	return env, nil
}

// Encode serializes the envelope into the canonical request body.
func (e *Envelope) Encode() ([]byte, error) {
	return canonical.Marshal(map[string]any{"ops": e.Ops})
}

// wireFields maps an operation to its wire object, excluding login and
// sign. The signature is computed over exactly these fields.
func wireFields(op api.Operation) SignedOp {
	f := SignedOp{
		"type": string(op.Type),
		"obj":  wireObj(op.Type),
	}
	if op.ConvID != "" {
		f["conv_id"] = op.ConvID
	}
	if op.Ref != "" {
		f["ref"] = op.Ref
	}
	if op.ObjID != "" {
		f["obj_id"] = op.ObjID
	}
	if op.Data != nil {
		f["data"] = op.Data
	}
	return f
}

func wireObj(t api.OpType) string {
	if t == api.OpUploadSchema {
		return "obj_scheme"
	}
	return "task"
}
