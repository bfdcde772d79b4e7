package models

import "testing"

func TestOutputRefConventionalKeys(t *testing.T) {
	o := OutputRef{
		OutputKeyBranchID:       "branch-42",
		OutputKeyNoChangeReason: "already current",
		OutputKeyBlockReason:    "waiting on legal",
		OutputKeyNeedsInputOpen: true,
	}

	if o.BranchID() != "branch-42" {
		t.Errorf("BranchID = %q", o.BranchID())
	}
	if o.NoChangeReason() != "already current" {
		t.Errorf("NoChangeReason = %q", o.NoChangeReason())
	}
	if o.BlockReason() != "waiting on legal" {
		t.Errorf("BlockReason = %q", o.BlockReason())
	}
	if !o.NeedsInputOpen() {
		t.Error("expected NeedsInputOpen true")
	}
}

func TestOutputRefMissingAndWrongTypes(t *testing.T) {
	o := OutputRef{
		OutputKeyBranchID:       42,
		OutputKeyNeedsInputOpen: "yes",
	}

	if o.BranchID() != "" {
		t.Errorf("non-string branchId should read as empty, got %q", o.BranchID())
	}
	if o.NeedsInputOpen() {
		t.Error("non-bool needsInputOpen should read as false")
	}

	var empty OutputRef
	if empty.BlockReason() != "" || empty.NeedsInputOpen() {
		t.Error("nil OutputRef should read as zero values")
	}
}

func TestOutputRefMerge(t *testing.T) {
	base := OutputRef{OutputKeyBranchID: "b1", "custom": "kept"}
	patched := base.Merge(OutputRef{OutputKeyBranchID: "b2", OutputKeyNeedsInputOpen: true})

	if patched.BranchID() != "b2" {
		t.Errorf("expected patch to win, got %q", patched.BranchID())
	}
	if patched["custom"] != "kept" {
		t.Error("expected unrelated keys to survive merge")
	}
	if base.BranchID() != "b1" {
		t.Error("merge should not mutate the receiver")
	}

	var nilRef OutputRef
	merged := nilRef.Merge(OutputRef{OutputKeyBlockReason: "r"})
	if merged.BlockReason() != "r" {
		t.Error("merge on nil receiver should copy the patch")
	}
}
