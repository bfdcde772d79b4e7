package models

import (
	"reflect"
	"testing"
)

func TestTaskStatusValid(t *testing.T) {
	valid := []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}

	invalid := []TaskStatus{"", "pending", "cancelled", "DONE"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("expected %s to be invalid", s)
		}
	}
}

func TestTaskTypeValid(t *testing.T) {
	valid := []TaskType{TaskTypeResearch, TaskTypeWrite, TaskTypeReview, TaskTypeQA, TaskTypeSynthesis}
	for _, tt := range valid {
		if !tt.Valid() {
			t.Errorf("expected %s to be valid", tt)
		}
	}

	if TaskType("edit").Valid() {
		t.Error("expected unknown task type to be invalid")
	}
}

func TestRunStatusTerminal(t *testing.T) {
	if !RunStatusCompleted.Terminal() {
		t.Error("completed should be terminal")
	}
	if !RunStatusCancelled.Terminal() {
		t.Error("cancelled should be terminal")
	}
	if RunStatusActive.Terminal() {
		t.Error("active should not be terminal")
	}
	if RunStatusBlocked.Terminal() {
		t.Error("blocked should not be terminal")
	}
}

func TestNormalizeDependsOn(t *testing.T) {
	got := NormalizeDependsOn([]string{"a", "b", "a", "", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeDependsOn = %v, want %v", got, want)
	}

	if NormalizeDependsOn(nil) != nil {
		t.Error("expected nil for empty input")
	}
}
