// Package corezoid provides a client for submitting batches of task
// operations to a Corezoid process engine over HTTP.
//
// The client signs every operation, assembles an ordered request
// envelope, sends it, and correlates the engine's per-operation results
// back to the originating operations—distinguishing transport failures
// from per-operation application errors. It runs fully in Go, holds no
// state between calls, and integrates cleanly into existing codebases.
//
// # Core Concepts
//
// The programming model is intentionally small and idiomatic:
//
//  1. Client
//  2. Operation
//  3. Batch
//  4. BatchResult
//  5. Observer
//
// # Client
//
// The Client owns the credentials and the transport. One Send call is
// one signed envelope and one HTTP exchange:
//
//	cfg := corezoid.Config{APILogin: "login", APISecret: "secret"}
//	client, err := corezoid.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Send(ctx,
//	    corezoid.NewCreate("1023", "order-7", map[string]any{"amount": 100}),
//	)
//
// Clients are stateless between calls and safe for concurrent use.
// Convenience methods (CreateTask, ModifyTaskByRef, GetTask,
// UploadSchema, ...) wrap single-operation sends.
//
// # Operations
//
// An Operation is an immutable description of one unit of work against
// a conveyor. Operations are built with constructors and carry a
// caller-supplied reference (ref) or an engine-assigned object ID.
// Within one batch, refs must be unique.
//
// # Batches
//
// A Batch accumulates operations up to a configurable maximum and
// preserves insertion order end-to-end; the engine's response is
// correlated by ref and by position, so order is part of the protocol.
//
// # Results and Errors
//
// Send returns an error only when no result could be produced:
// validation and signing failures mean nothing was sent; transport and
// protocol failures mean the exchange failed as a whole. Everything
// else is reported through the BatchResult, which pairs every operation
// with its response entry and exposes AllSuccess, Failures, and
// per-operation accessors. Callers can always tell "nothing was sent"
// from "sent but some operations failed" from "sent but the response
// couldn't be interpreted".
//
// # Observability
//
// An Observer receives batch lifecycle callbacks. Ready-made
// implementations log through log/slog or collect basic in-memory
// metrics; both can be combined with NewCompositeObserver. Credentials
// never reach an observer or a log line.
//
// See the examples directory for end-to-end usage.
package corezoid
