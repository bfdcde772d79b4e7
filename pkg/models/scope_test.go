package models

import "testing"

func TestNumericScopeNormalizes(t *testing.T) {
	s := NumericScope(100, 50)
	if s.From != 50 || s.To != 100 {
		t.Errorf("expected normalized bounds 50..100, got %d..%d", s.From, s.To)
	}
	if !s.IsNumeric() {
		t.Error("expected numeric scope")
	}
}

func TestOpaqueScope(t *testing.T) {
	s := OpaqueScope("introduction")
	if s.IsNumeric() {
		t.Error("opaque scope should not be numeric")
	}
	if s.Label != "introduction" {
		t.Errorf("expected label introduction, got %s", s.Label)
	}
}

func TestBoundsHandlesInvertedRange(t *testing.T) {
	// A scope deserialized from outside may carry inverted bounds.
	s := &DocumentScope{Kind: ScopeNumeric, From: 30, To: 10}
	from, to := s.Bounds()
	if from != 10 || to != 30 {
		t.Errorf("expected bounds 10..30, got %d..%d", from, to)
	}
}

func TestNilScopeIsNotNumeric(t *testing.T) {
	var s *DocumentScope
	if s.IsNumeric() {
		t.Error("nil scope should not be numeric")
	}
}
