package engine

import (
	"reflect"
	"testing"

	"github.com/coscribe/coscribe/pkg/models"
)

func TestDependenciesSatisfied(t *testing.T) {
	statusOf := map[string]models.TaskStatus{
		"a": models.TaskStatusDone,
		"b": models.TaskStatusInProgress,
		"c": models.TaskStatusDone,
	}

	if !DependenciesSatisfied(nil, statusOf) {
		t.Error("empty dependency set should be trivially satisfied")
	}
	if !DependenciesSatisfied([]string{"a", "c"}, statusOf) {
		t.Error("all-done dependencies should be satisfied")
	}
	if DependenciesSatisfied([]string{"a", "b"}, statusOf) {
		t.Error("in-progress dependency should not be satisfied")
	}
	if DependenciesSatisfied([]string{"missing"}, statusOf) {
		t.Error("unknown dependency should not be satisfied")
	}
}

func TestUnmetDependencies(t *testing.T) {
	statusOf := map[string]models.TaskStatus{
		"a": models.TaskStatusDone,
		"b": models.TaskStatusBlocked,
	}

	got := UnmetDependencies([]string{"a", "b", "x"}, statusOf)
	want := []string{"b", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnmetDependencies = %v, want %v", got, want)
	}

	if UnmetDependencies([]string{"a"}, statusOf) != nil {
		t.Error("expected nil when all dependencies are done")
	}
}
