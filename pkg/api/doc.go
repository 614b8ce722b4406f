// Package api contains the core building blocks used by the corezoid
// client. It defines operations, the error taxonomy, correlated batch
// results, and the Observer interface used for logging and metrics.
//
// Most users interact with the higher-level corezoid package, which
// re-exports selected types and helpers from this package. The api
// package is intended for advanced use cases, custom transports, or
// contributors extending the client itself.
//
// # Operations
//
// An Operation is an immutable description of one unit of work submitted
// against a conveyor: creating a task, modifying or reading it by
// reference or object ID, or uploading a process schema. The set of
// operation kinds is a closed enumeration (OpType); code that processes
// operations switches exhaustively over it.
//
// # Results
//
// A BatchResult pairs every submitted operation with the response entry
// the engine returned for it, preserving submission order. Per-pair
// accessors (IsSuccess, Err, Result) distinguish engine-side application
// errors from transport or protocol failures, which abort the whole call
// and never produce a BatchResult.
//
// # Errors
//
// The package defines one error type per failure phase: ValidationError
// and SigningError before the network boundary, TransportError and
// ProtocolError at the boundary, CorrelationError and ApplicationError
// inside an otherwise successful exchange. All are matched with
// errors.As and none ever carries the API secret.
//
// # Observability
//
// The Observer interface receives batch lifecycle callbacks. Ready-made
// implementations cover structured logging via log/slog and basic
// in-memory metrics, along with a composite helper to combine them.
package api
