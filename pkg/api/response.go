package api

// Proc values reported by the engine for one operation.
const (
	ProcOK    = "ok"
	ProcError = "error"
)

// ResponseEntry is one decoded element of the response ops array,
// in the order the engine returned it.
type ResponseEntry struct {
	Ref         string
	ObjID       string
	Proc        string
	Description string
	Code        string

	// Data holds the engine-provided payload for this entry, when present.
	Data map[string]any

	// Raw is the complete decoded entry, including engine fields the
	// client does not interpret.
	Raw map[string]any
}

// OpResult pairs one submitted Operation with the response entry that
// was correlated to it. Entry is nil when no entry could be matched.
type OpResult struct {
	Op    Operation
	Entry *ResponseEntry
}

// Matched reports whether a response entry was correlated to this operation.
func (r OpResult) Matched() bool { return r.Entry != nil }

// IsSuccess reports whether the engine processed this operation
// successfully. An unmatched operation is never a success.
func (r OpResult) IsSuccess() bool {
	return r.Entry != nil && r.Entry.Proc == ProcOK
}

// Err returns the engine-reported *ApplicationError for this operation,
// or nil when the operation succeeded or was never matched.
func (r OpResult) Err() error {
	if r.Entry == nil || r.Entry.Proc != ProcError {
		return nil
	}
	return &ApplicationError{
		Ref:         r.Entry.Ref,
		ObjID:       r.Entry.ObjID,
		Code:        r.Entry.Code,
		Description: r.Entry.Description,
	}
}

// Result returns the engine-provided payload for this operation, or nil
// when there is none.
func (r OpResult) Result() map[string]any {
	if r.Entry == nil {
		return nil
	}
	return r.Entry.Data
}

// BatchResult is the outcome of one Send call that reached the engine
// and produced an interpretable response. Results preserves the order
// operations were submitted in.
type BatchResult struct {
	Results []OpResult

	// RequestProc and ErrorMessage carry the engine's top-level request
	// status, independent of per-operation outcomes.
	RequestProc  string
	ErrorMessage string

	// CorrelationErr is set when the response entries could not all be
	// aligned with the submitted operations. The matched pairs in
	// Results are still valid.
	CorrelationErr *CorrelationError
}

// AllSuccess reports whether every operation was matched and processed
// successfully and no correlation problem occurred.
func (b *BatchResult) AllSuccess() bool {
	if b.CorrelationErr != nil {
		return false
	}
	if b.RequestProc != "" && b.RequestProc != ProcOK {
		return false
	}
	for _, r := range b.Results {
		if !r.IsSuccess() {
			return false
		}
	}
	return true
}

// Failures returns the operations the engine reported as failed,
// in submission order.
func (b *BatchResult) Failures() []OpResult {
	var out []OpResult
	for _, r := range b.Results {
		if r.Matched() && !r.IsSuccess() {
			out = append(out, r)
		}
	}
	return out
}

// Unmatched returns the operations no response entry could be
// correlated to, in submission order.
func (b *BatchResult) Unmatched() []OpResult {
	var out []OpResult
	for _, r := range b.Results {
		if !r.Matched() {
			out = append(out, r)
		}
	}
	return out
}

// ByRef returns the result for the operation submitted with the given
// ref, or a zero OpResult and false when no such operation exists.
func (b *BatchResult) ByRef(ref string) (OpResult, bool) {
	for _, r := range b.Results {
		if r.Op.Ref == ref {
			return r, true
		}
	}
	return OpResult{}, false
}
