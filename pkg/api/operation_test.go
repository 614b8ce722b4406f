package api

import (
	"errors"
	"testing"
)

func TestConstructorsSetExpectedFields(t *testing.T) {
	op := NewCreate("1023", "r1", map[string]any{"k": "v"})
	if op.Type != OpCreate || op.ConvID != "1023" || op.Ref != "r1" {
		t.Fatalf("unexpected create operation: %+v", op)
	}

	op = NewModifyByID("1023", "obj-1", nil)
	if op.Type != OpModifyByID || op.ObjID != "obj-1" || op.Ref != "" {
		t.Fatalf("unexpected modify operation: %+v", op)
	}

	op = NewGetByRef("1023", "r2")
	if op.Type != OpGetByRef || op.Data != nil {
		t.Fatalf("unexpected get operation: %+v", op)
	}
}

func TestNewUploadSchemaPayload(t *testing.T) {
	op := NewUploadSchema("42", `{"nodes":[]}`, true)
	if op.Type != OpUploadSchema {
		t.Fatalf("unexpected type: %s", op.Type)
	}
	if op.Data["folder_id"] != "42" || op.Data["schema"] != `{"nodes":[]}` || op.Data["async"] != "true" {
		t.Fatalf("unexpected payload: %v", op.Data)
	}
	if op.ConvID != "" || op.Ref != "" || op.ObjID != "" {
		t.Fatalf("upload_schema must not carry task identifiers: %+v", op)
	}
}

func TestIdentifierPrefersRef(t *testing.T) {
	if id := (Operation{Ref: "r1", ObjID: "o1"}).Identifier(); id != "r1" {
		t.Fatalf("Identifier() = %q, want r1", id)
	}
	if id := (Operation{ObjID: "o1"}).Identifier(); id != "o1" {
		t.Fatalf("Identifier() = %q, want o1", id)
	}
	if id := (Operation{}).Identifier(); id != "" {
		t.Fatalf("Identifier() = %q, want empty", id)
	}
}

func TestValidate(t *testing.T) {
	valid := []Operation{
		NewCreate("1", "r1", nil),
		NewModifyByRef("1", "r1", map[string]any{"k": "v"}),
		NewModifyByID("1", "o1", nil),
		NewGetByRef("1", "r1"),
		NewGetByID("1", "o1"),
		NewUploadSchema("42", "{}", false),
	}
	for _, op := range valid {
		if err := op.Validate(); err != nil {
			t.Fatalf("Validate(%s) failed: %v", op.Type, err)
		}
	}

	invalid := map[string]Operation{
		"create without conv_id":  {Type: OpCreate, Ref: "r1"},
		"create without ref":      {Type: OpCreate, ConvID: "1"},
		"modify_by_id without id": {Type: OpModifyByID, ConvID: "1"},
		"get_by_ref without ref":  {Type: OpGetByRef, ConvID: "1"},
		"upload without payload":  {Type: OpUploadSchema},
		"unknown type":            {Type: OpType("vanish"), ConvID: "1", Ref: "r1"},
	}
	for name, op := range invalid {
		t.Run(name, func(t *testing.T) {
			err := op.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
		})
	}
}
