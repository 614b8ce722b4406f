package corezoid

import (
	"github.com/petrijr/corezoid/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Operation            = api.Operation
	OpType               = api.OpType
	ResponseEntry        = api.ResponseEntry
	OpResult             = api.OpResult
	BatchResult          = api.BatchResult
	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver

	ValidationError  = api.ValidationError
	SigningError     = api.SigningError
	TransportError   = api.TransportError
	ProtocolError    = api.ProtocolError
	CorrelationError = api.CorrelationError
	ApplicationError = api.ApplicationError
)

// Re-export common observer helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
)

// Re-export operation constructors for convenience.

var (
	NewCreate       = api.NewCreate
	NewModifyByRef  = api.NewModifyByRef
	NewModifyByID   = api.NewModifyByID
	NewGetByRef     = api.NewGetByRef
	NewGetByID      = api.NewGetByID
	NewUploadSchema = api.NewUploadSchema
)

// Re-export operation kinds and proc values.

const (
	OpCreate       = api.OpCreate
	OpModifyByRef  = api.OpModifyByRef
	OpModifyByID   = api.OpModifyByID
	OpGetByRef     = api.OpGetByRef
	OpGetByID      = api.OpGetByID
	OpUploadSchema = api.OpUploadSchema

	ProcOK    = api.ProcOK
	ProcError = api.ProcError
)
