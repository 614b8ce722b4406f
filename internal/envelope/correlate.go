package envelope

import (
	"github.com/petrijr/corezoid/pkg/api"
)

// Correlate aligns response entries with the operations that produced
// them and assembles the BatchResult.
//
// Entries carrying a ref or obj_id are matched against the pending
// operation with the same identifier. Entries without identifying
// fields are matched positionally against unidentified operations,
// respecting original relative order on both sides.
//
// A length or identity mismatch sets CorrelationErr on the result but
// never discards the pairs that could be matched.
func Correlate(ops []api.Operation, res *Response) *api.BatchResult {
	out := &api.BatchResult{
		Results:      make([]api.OpResult, len(ops)),
		RequestProc:  res.RequestProc,
		ErrorMessage: res.ErrorMessage,
	}
	for i, op := range ops {
		out.Results[i] = api.OpResult{Op: op}
	}

	// Identified operations, by ref and by obj_id. Refs are unique per
	// batch; an ambiguous obj_id is left to positional matching.
	byRef := make(map[string]int)
	byObjID := make(map[string]int)
	for i, op := range ops {
		if op.Ref != "" {
			byRef[op.Ref] = i
		}
		if op.ObjID != "" {
			if _, dup := byObjID[op.ObjID]; dup {
				byObjID[op.ObjID] = -1
			} else {
				byObjID[op.ObjID] = i
			}
		}
	}

	matched := make([]bool, len(ops))
	var unconsumed int

	// First pass: match by identifier.
	positional := make([]*api.ResponseEntry, 0, len(res.Entries))
	for i := range res.Entries {
		entry := &res.Entries[i]
		if idx, ok := matchIdentified(entry, byRef, byObjID, matched); ok {
			out.Results[idx].Entry = entry
			matched[idx] = true
			continue
		}
		if entry.Ref != "" || entry.ObjID != "" {
			// Identified entry with no matching operation.
			unconsumed++
			continue
		}
		positional = append(positional, entry)
	}

	// Second pass: unidentified entries against unidentified operations,
	// in order.
	pi := 0
	for i, op := range ops {
		if matched[i] || op.Identifier() != "" {
			continue
		}
		if pi >= len(positional) {
			break
		}
		out.Results[i].Entry = positional[pi]
		matched[i] = true
		pi++
	}
	unconsumed += len(positional) - pi

	switch {
	case len(res.Entries) != len(ops):
		out.CorrelationErr = &api.CorrelationError{
			Sent:     len(ops),
			Received: len(res.Entries),
			Reason:   "response entry count does not match batch size",
		}
	case unconsumed > 0 || !allMatched(matched):
		out.CorrelationErr = &api.CorrelationError{
			Sent:     len(ops),
			Received: len(res.Entries),
			Reason:   "response entries could not be aligned with operations",
		}
	}
	return out
}

func matchIdentified(entry *api.ResponseEntry, byRef, byObjID map[string]int, matched []bool) (int, bool) {
	if entry.Ref != "" {
		if idx, ok := byRef[entry.Ref]; ok && !matched[idx] {
			return idx, true
		}
		return 0, false
	}
	if entry.ObjID != "" {
		if idx, ok := byObjID[entry.ObjID]; ok && idx >= 0 && !matched[idx] {
			return idx, true
		}
	}
	return 0, false
}

func allMatched(matched []bool) bool {
	for _, m := range matched {
		if !m {
			return false
		}
	}
	return true
}
