package api

// OpType identifies the kind of operation submitted to the engine.
// The set is closed: every place that processes operations switches
// exhaustively over these values.
type OpType string

const (
	OpCreate       OpType = "create"
	OpModifyByRef  OpType = "modify_by_ref"
	OpModifyByID   OpType = "modify_by_id"
	OpGetByRef     OpType = "get_by_ref"
	OpGetByID      OpType = "get_by_id"
	OpUploadSchema OpType = "upload_schema"
)

// Operation describes one unit of work submitted against a conveyor.
// Construct operations with the New* helpers and treat them as immutable;
// the client never mutates an Operation after it has been handed over.
//
// Exactly one of Ref / ObjID is meaningful depending on Type:
// create and *_by_ref operations address a task by Ref, *_by_id
// operations by the engine-assigned ObjID. UploadSchema uses neither.
type Operation struct {
	Type   OpType
	ConvID string
	Ref    string
	ObjID  string
	Data   map[string]any
}

// NewCreate returns a create operation for the given conveyor.
// Ref is the caller-supplied idempotent reference for the new task.
func NewCreate(convID, ref string, data map[string]any) Operation {
	return Operation{Type: OpCreate, ConvID: convID, Ref: ref, Data: data}
}

// NewModifyByRef returns an operation that modifies an existing task
// addressed by its reference.
func NewModifyByRef(convID, ref string, data map[string]any) Operation {
	return Operation{Type: OpModifyByRef, ConvID: convID, Ref: ref, Data: data}
}

// NewModifyByID returns an operation that modifies an existing task
// addressed by its engine-assigned object ID.
func NewModifyByID(convID, objID string, data map[string]any) Operation {
	return Operation{Type: OpModifyByID, ConvID: convID, ObjID: objID, Data: data}
}

// NewGetByRef returns an operation that reads a task by reference.
func NewGetByRef(convID, ref string) Operation {
	return Operation{Type: OpGetByRef, ConvID: convID, Ref: ref}
}

// NewGetByID returns an operation that reads a task by object ID.
func NewGetByID(convID, objID string) Operation {
	return Operation{Type: OpGetByID, ConvID: convID, ObjID: objID}
}

// NewUploadSchema returns an operation that uploads a process schema
// into the given folder. The schema travels in the operation payload,
// so it rides the same signed envelope as task operations.
func NewUploadSchema(folderID, schema string, async bool) Operation {
	a := "false"
	if async {
		a = "true"
	}
	return Operation{
		Type: OpUploadSchema,
		Data: map[string]any{
			"folder_id": folderID,
			"schema":    schema,
			"async":     a,
		},
	}
}

// Identifier returns the value the wire protocol correlates this
// operation by: Ref when set, otherwise ObjID, otherwise "".
func (o Operation) Identifier() string {
	if o.Ref != "" {
		return o.Ref
	}
	return o.ObjID
}

// Validate checks that the operation is well-formed for its type.
// It returns a *ValidationError describing the first problem found.
func (o Operation) Validate() error {
	switch o.Type {
	case OpCreate, OpModifyByRef, OpGetByRef:
		if o.ConvID == "" {
			return &ValidationError{Reason: "operation is missing conv_id"}
		}
		if o.Ref == "" {
			return &ValidationError{Reason: string(o.Type) + " operation requires a ref"}
		}
	case OpModifyByID, OpGetByID:
		if o.ConvID == "" {
			return &ValidationError{Reason: "operation is missing conv_id"}
		}
		if o.ObjID == "" {
			return &ValidationError{Reason: string(o.Type) + " operation requires an obj_id"}
		}
	case OpUploadSchema:
		if o.Data == nil {
			return &ValidationError{Reason: "upload_schema operation requires folder_id and schema"}
		}
	default:
		return &ValidationError{Reason: "unrecognized operation type: " + string(o.Type)}
	}
	return nil
}
