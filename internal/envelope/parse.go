package envelope

import (
	"encoding/json"
	"strconv"

	"github.com/petrijr/corezoid/pkg/api"
)

// Response is the decoded top-level shape of an engine reply.
type Response struct {
	RequestProc  string
	ErrorMessage string
	Entries      []api.ResponseEntry
}

// Parse decodes raw response bytes. The top level must be a JSON object
// with an ops array; every element must carry a proc field. Entry order
// is preserved exactly as received.
//
// Shape violations fail with *api.ProtocolError.
func Parse(raw []byte) (*Response, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &api.ProtocolError{Reason: "response is not a JSON object"}
	}

	res := &Response{}
	if rp, ok := top["request_proc"]; ok {
		if err := json.Unmarshal(rp, &res.RequestProc); err != nil {
			return nil, &api.ProtocolError{Reason: "request_proc is not a string"}
		}
	}
	if em, ok := top["error_message"]; ok {
		// Best effort; an unreadable error_message is not fatal.
		_ = json.Unmarshal(em, &res.ErrorMessage)
	}

	rawOps, ok := top["ops"]
	if !ok {
		return nil, &api.ProtocolError{Reason: "response has no ops array"}
	}
	var elems []map[string]any
	if err := json.Unmarshal(rawOps, &elems); err != nil {
		return nil, &api.ProtocolError{Reason: "ops is not an array of objects"}
	}

	res.Entries = make([]api.ResponseEntry, 0, len(elems))
	for i, elem := range elems {
		entry, err := parseEntry(i, elem)
		if err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, entry)
	}
	return res, nil
}

func parseEntry(i int, elem map[string]any) (api.ResponseEntry, error) {
	proc, ok := elem["proc"].(string)
	if !ok || proc == "" {
		return api.ResponseEntry{}, &api.ProtocolError{
			Reason: "ops[" + strconv.Itoa(i) + "] has no proc field",
		}
	}

	entry := api.ResponseEntry{
		Proc: proc,
		Raw:  elem,
	}
	entry.Ref = stringField(elem, "ref")
	entry.ObjID = stringField(elem, "obj_id")
	entry.Code = stringField(elem, "error_code")
	if data, ok := elem["data"].(map[string]any); ok {
		entry.Data = data
	}

	// The engine has reported failures under both keys over time.
	if d := stringField(elem, "description"); d != "" {
		entry.Description = d
	} else {
		entry.Description = stringField(elem, "error_message")
	}
	return entry, nil
}

// stringField reads a field that the engine sends as either a string or
// a number.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
