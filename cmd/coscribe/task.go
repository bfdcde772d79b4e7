package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coscribe/coscribe/internal/orchestrator"
	"github.com/coscribe/coscribe/pkg/models"
)

var (
	taskRunID      string
	taskType       string
	taskAssignee   string
	taskDependsOn  []string
	taskScopeFrom  int
	taskScopeTo    int
	taskScopeLabel string
	taskCriteria   []string

	outputBranch     string
	outputNoChange   string
	outputBlocked    string
	outputNeedsInput bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks within a run",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task to a run",
	Long: `Add a task to a run.

Write tasks should declare a document scope with --from/--to (numeric
section range) or --scope-label (named region). Numeric write scopes
that overlap a live write task are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, _, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		var scope *models.DocumentScope
		if taskScopeLabel != "" {
			scope = models.OpaqueScope(taskScopeLabel)
		} else if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
			scope = models.NumericScope(taskScopeFrom, taskScopeTo)
		}

		task, err := svc.CreateTask(orchestrator.CreateTaskParams{
			RunID:              taskRunID,
			Title:              args[0],
			TaskType:           models.TaskType(taskType),
			AssignedAgentID:    taskAssignee,
			DependsOn:          taskDependsOn,
			DocumentScope:      scope,
			AcceptanceCriteria: taskCriteria,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s created task %s\n", color.GreenString("✓"), task.ID)
		return nil
	},
}

var taskStartCmd = newTaskTransitionCmd("start", models.TaskStatusInProgress,
	"Start a task (counts against the run's parallel cap)")
var taskDoneCmd = newTaskTransitionCmd("done", models.TaskStatusDone,
	"Finish a task (dependencies must be done; write tasks need an outcome)")
var taskTodoCmd = newTaskTransitionCmd("todo", models.TaskStatusTodo,
	"Send a task back to todo")

var taskBlockCmd = &cobra.Command{
	Use:   "block <task-id> <reason>",
	Short: "Mark a task blocked with a reason",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, _, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		// The guard reads the reason from the output payload, so record
		// it before transitioning.
		if _, err := svc.UpdateTaskOutput(args[0], models.OutputRef{
			models.OutputKeyBlockReason: args[1],
		}); err != nil {
			return err
		}
		task, err := svc.TransitionTask(args[0], models.TaskStatusBlocked)
		if err != nil {
			return err
		}
		fmt.Printf("%s task %s is now %s\n", color.YellowString("■"), task.ID, task.Status)
		return nil
	},
}

var taskOutputCmd = &cobra.Command{
	Use:   "output <task-id>",
	Short: "Record a task's outcome",
	Long: `Record outcome data on a task.

--branch records a branch proposal id, --no-change records why a write
task produced no edit. Either satisfies the write-task completion
requirement. --needs-input flags the task as waiting on a human.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, _, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		patch := models.OutputRef{}
		if outputBranch != "" {
			patch[models.OutputKeyBranchID] = outputBranch
		}
		if outputNoChange != "" {
			patch[models.OutputKeyNoChangeReason] = outputNoChange
		}
		if outputBlocked != "" {
			patch[models.OutputKeyBlockReason] = outputBlocked
		}
		if cmd.Flags().Changed("needs-input") {
			patch[models.OutputKeyNeedsInputOpen] = outputNeedsInput
		}
		if len(patch) == 0 {
			return fmt.Errorf("nothing to record; see --help for flags")
		}

		task, err := svc.UpdateTaskOutput(args[0], patch)
		if err != nil {
			return err
		}
		fmt.Printf("%s updated output for task %s\n", color.GreenString("✓"), task.ID)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a task and the status of its dependencies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, _, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		task, err := db.GetTask(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Task %s [%s]\n", task.ID, task.Status)
		fmt.Printf("  title: %s\n", task.Title)
		fmt.Printf("  type: %s  assignee: %s  run: %s\n", task.TaskType, task.AssignedAgentID, task.RunID)
		if task.DocumentScope != nil {
			if task.DocumentScope.IsNumeric() {
				from, to := task.DocumentScope.Bounds()
				fmt.Printf("  scope: %d-%d\n", from, to)
			} else {
				fmt.Printf("  scope: %s\n", task.DocumentScope.Label)
			}
		}
		for _, c := range task.AcceptanceCriteria {
			fmt.Printf("  criteria: %s\n", c)
		}

		deps, err := db.ListTasksByIDs(task.DependsOn)
		if err != nil {
			return err
		}
		for _, dep := range deps {
			marker := color.YellowString(string(dep.Status))
			if dep.Status == models.TaskStatusDone {
				marker = color.GreenString(string(dep.Status))
			}
			fmt.Printf("  depends on %s [%s] %s\n", dep.ID, marker, dep.Title)
		}
		return nil
	},
}

// newTaskTransitionCmd builds the shared verb-style task transition commands.
func newTaskTransitionCmd(verb string, target models.TaskStatus, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, _, err := openService()
			if err != nil {
				return err
			}
			defer db.Close()

			task, err := svc.TransitionTask(args[0], target)
			if err != nil {
				return err
			}
			fmt.Printf("%s task %s is now %s\n", color.GreenString("✓"), task.ID, task.Status)
			return nil
		},
	}
}

func init() {
	taskAddCmd.Flags().StringVar(&taskRunID, "run", "", "Run id the task belongs to")
	taskAddCmd.Flags().StringVar(&taskType, "type", "research", "Task type: research, write, review, qa, synthesis")
	taskAddCmd.Flags().StringVar(&taskAssignee, "assignee", "", "Assigned agent id")
	taskAddCmd.Flags().StringSliceVar(&taskDependsOn, "depends-on", nil, "Task ids this task depends on")
	taskAddCmd.Flags().IntVar(&taskScopeFrom, "from", 0, "Numeric scope start")
	taskAddCmd.Flags().IntVar(&taskScopeTo, "to", 0, "Numeric scope end")
	taskAddCmd.Flags().StringVar(&taskScopeLabel, "scope-label", "", "Named scope region")
	taskAddCmd.Flags().StringSliceVar(&taskCriteria, "criteria", nil, "Acceptance criteria")
	taskAddCmd.MarkFlagRequired("run")
	taskAddCmd.MarkFlagRequired("assignee")

	taskOutputCmd.Flags().StringVar(&outputBranch, "branch", "", "Branch proposal id")
	taskOutputCmd.Flags().StringVar(&outputNoChange, "no-change", "", "Reason the task produced no edit")
	taskOutputCmd.Flags().StringVar(&outputBlocked, "block-reason", "", "Reason the task is blocked")
	taskOutputCmd.Flags().BoolVar(&outputNeedsInput, "needs-input", false, "Mark the task as waiting on a human")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskStartCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskTodoCmd)
	taskCmd.AddCommand(taskBlockCmd)
	taskCmd.AddCommand(taskOutputCmd)
}
