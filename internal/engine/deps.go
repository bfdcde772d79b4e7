package engine

import "github.com/coscribe/coscribe/pkg/models"

// DependenciesSatisfied reports whether every id in dependsOn maps to done
// in statusOf. An empty dependency set is trivially satisfied. An id
// missing from statusOf counts as unsatisfied.
func DependenciesSatisfied(dependsOn []string, statusOf map[string]models.TaskStatus) bool {
	for _, id := range dependsOn {
		if statusOf[id] != models.TaskStatusDone {
			return false
		}
	}
	return true
}

// UnmetDependencies returns the ids in dependsOn that are not done,
// preserving order, for rejection reporting.
func UnmetDependencies(dependsOn []string, statusOf map[string]models.TaskStatus) []string {
	var unmet []string
	for _, id := range dependsOn {
		if statusOf[id] != models.TaskStatusDone {
			unmet = append(unmet, id)
		}
	}
	return unmet
}

// statusIndex builds a status lookup from a task snapshot.
func statusIndex(tasks []*models.AgentTask) map[string]models.TaskStatus {
	statusOf := make(map[string]models.TaskStatus, len(tasks))
	for _, t := range tasks {
		statusOf[t.ID] = t.Status
	}
	return statusOf
}
