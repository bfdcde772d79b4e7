// Package plan loads run plans from YAML and turns them into runs and
// tasks through the orchestrator. A plan names its tasks with local keys
// so dependencies can be declared before ids exist.
package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coscribe/coscribe/internal/orchestrator"
	"github.com/coscribe/coscribe/pkg/models"
)

// Plan describes a run and its initial tasks.
type Plan struct {
	Workspace         string         `yaml:"workspace"`
	Document          string         `yaml:"document"`
	Coordinator       string         `yaml:"coordinator"`
	Objective         string         `yaml:"objective"`
	MaxParallelAgents int            `yaml:"max_parallel_agents"`
	Constraints       map[string]any `yaml:"constraints"`
	Tasks             []TaskDraft    `yaml:"tasks"`
}

// TaskDraft is a task before it has an id. DependsOn references other
// drafts by key.
type TaskDraft struct {
	Key                string      `yaml:"key"`
	Title              string      `yaml:"title"`
	Type               string      `yaml:"type"`
	Assignee           string      `yaml:"assignee"`
	DependsOn          []string    `yaml:"depends_on"`
	Scope              *ScopeDraft `yaml:"scope"`
	AcceptanceCriteria []string    `yaml:"acceptance_criteria"`
}

// ScopeDraft is the YAML form of a document scope. A label makes it
// opaque; from/to make it numeric.
type ScopeDraft struct {
	From  *int   `yaml:"from"`
	To    *int   `yaml:"to"`
	Label string `yaml:"label"`
}

// LoadFile reads and validates a plan from a YAML file.
func LoadFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates plan YAML.
func Parse(data []byte) (*Plan, error) {
	p := &Plan{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks draft keys, dependency references and scope drafts
// before anything touches the orchestrator.
func (p *Plan) Validate() error {
	if p.Objective == "" {
		return fmt.Errorf("plan has no objective")
	}

	seen := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.Key == "" {
			return fmt.Errorf("task %q has no key", t.Title)
		}
		if seen[t.Key] {
			return fmt.Errorf("duplicate task key %q", t.Key)
		}
		seen[t.Key] = true

		if t.Scope != nil {
			if t.Scope.Label == "" && (t.Scope.From == nil || t.Scope.To == nil) {
				return fmt.Errorf("task %q scope needs either a label or both from and to", t.Key)
			}
		}
	}

	for _, t := range p.Tasks {
		for _, dep := range t.DependsOn {
			if !seen[dep] {
				return fmt.Errorf("task %q depends on unknown key %q", t.Key, dep)
			}
		}
	}

	return validateNoCycles(p.Tasks)
}

// validateNoCycles checks that there are no circular dependencies among drafts.
func validateNoCycles(tasks []TaskDraft) error {
	deps := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		deps[t.Key] = t.DependsOn
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(tasks))

	var visit func(key string) error
	visit = func(key string) error {
		switch state[key] {
		case visiting:
			return fmt.Errorf("circular dependency involving %q", key)
		case done:
			return nil
		}
		state[key] = visiting
		for _, dep := range deps[key] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[key] = done
		return nil
	}

	for _, t := range tasks {
		if err := visit(t.Key); err != nil {
			return err
		}
	}
	return nil
}

// order returns the drafts sorted so every draft comes after the drafts
// it depends on. Validate must have passed.
func (p *Plan) order() []TaskDraft {
	byKey := make(map[string]TaskDraft, len(p.Tasks))
	for _, t := range p.Tasks {
		byKey[t.Key] = t
	}

	var ordered []TaskDraft
	placed := make(map[string]bool, len(p.Tasks))

	var place func(key string)
	place = func(key string) {
		if placed[key] {
			return
		}
		placed[key] = true
		for _, dep := range byKey[key].DependsOn {
			place(dep)
		}
		ordered = append(ordered, byKey[key])
	}

	for _, t := range p.Tasks {
		place(t.Key)
	}
	return ordered
}

// scope converts the draft into a document scope.
func (d *ScopeDraft) scope() *models.DocumentScope {
	if d == nil {
		return nil
	}
	if d.Label != "" {
		return models.OpaqueScope(d.Label)
	}
	return models.NumericScope(*d.From, *d.To)
}

// taskType maps a draft type string to a task type. Empty defaults to
// research.
func taskType(s string) models.TaskType {
	if s == "" {
		return models.TaskTypeResearch
	}
	return models.TaskType(s)
}

// Result reports what Apply created.
type Result struct {
	Run   *models.AgentRun
	Tasks []*models.AgentTask
	// IDs maps draft keys to created task ids.
	IDs map[string]string
}

// Apply creates the run and its tasks through the orchestrator in
// dependency order. Engine rejections surface unchanged so callers can
// report which draft was refused.
func Apply(svc *orchestrator.Service, p *Plan) (*Result, error) {
	run, err := svc.CreateRun(orchestrator.CreateRunParams{
		WorkspaceID:        p.Workspace,
		DocumentID:         p.Document,
		CoordinatorAgentID: p.Coordinator,
		Objective:          p.Objective,
		Constraints:        p.Constraints,
		MaxParallelAgents:  p.MaxParallelAgents,
	})
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	res := &Result{Run: run, IDs: make(map[string]string, len(p.Tasks))}
	for _, draft := range p.order() {
		dependsOn := make([]string, 0, len(draft.DependsOn))
		for _, dep := range draft.DependsOn {
			dependsOn = append(dependsOn, res.IDs[dep])
		}

		task, err := svc.CreateTask(orchestrator.CreateTaskParams{
			RunID:              run.ID,
			Title:              draft.Title,
			TaskType:           taskType(draft.Type),
			AssignedAgentID:    draft.Assignee,
			DependsOn:          dependsOn,
			DocumentScope:      draft.Scope.scope(),
			AcceptanceCriteria: draft.AcceptanceCriteria,
		})
		if err != nil {
			return res, fmt.Errorf("create task %q: %w", draft.Key, err)
		}
		res.IDs[draft.Key] = task.ID
		res.Tasks = append(res.Tasks, task)
	}

	return res, nil
}
