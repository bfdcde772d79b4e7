package models

// Conventional OutputRef keys the orchestration engine interprets. All
// other keys pass through untouched.
const (
	// OutputKeyBranchID references a branch proposal produced by a write task.
	OutputKeyBranchID = "branchId"
	// OutputKeyNoChangeReason explains why a write task produced no branch.
	OutputKeyNoChangeReason = "noChangeReason"
	// OutputKeyBlockReason explains why a task is blocked.
	OutputKeyBlockReason = "blockReason"
	// OutputKeyNeedsInputOpen flags an unresolved human-input request.
	OutputKeyNeedsInputOpen = "needsInputOpen"
)

// OutputRef is the opaque structured payload attached to a task's output.
// The engine validates only the conventional keys above; everything else
// is caller data.
type OutputRef map[string]any

// BranchID returns the branch proposal reference, or "" if absent.
func (o OutputRef) BranchID() string {
	return o.stringKey(OutputKeyBranchID)
}

// NoChangeReason returns the no-change explanation, or "" if absent.
func (o OutputRef) NoChangeReason() string {
	return o.stringKey(OutputKeyNoChangeReason)
}

// BlockReason returns the block explanation, or "" if absent.
func (o OutputRef) BlockReason() string {
	return o.stringKey(OutputKeyBlockReason)
}

// NeedsInputOpen returns true if the task has an unresolved human-input
// request. Non-boolean values are treated as false.
func (o OutputRef) NeedsInputOpen() bool {
	v, ok := o[OutputKeyNeedsInputOpen]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Merge returns a copy of o with the entries of patch applied on top.
// A nil receiver yields a copy of patch.
func (o OutputRef) Merge(patch OutputRef) OutputRef {
	out := make(OutputRef, len(o)+len(patch))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

func (o OutputRef) stringKey(key string) string {
	v, ok := o[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
