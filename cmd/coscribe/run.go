package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coscribe/coscribe/internal/orchestrator"
	"github.com/coscribe/coscribe/pkg/models"
)

var (
	runWorkspace   string
	runDocument    string
	runCoordinator string
	runParallel    int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Manage agent runs",
}

var runCreateCmd = &cobra.Command{
	Use:   "create <objective>",
	Short: "Create a new run",
	Long: `Create a new run for a shared document.

The coordinator agent must be registered and active in the workspace
(see 'coscribe agent add'). The run starts active with no tasks.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, cfg, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		workspace := runWorkspace
		if workspace == "" {
			workspace = cfg.Defaults.WorkspaceID
		}
		parallel := runParallel
		if parallel == 0 {
			parallel = cfg.Defaults.MaxParallelAgents
		}

		run, err := svc.CreateRun(orchestrator.CreateRunParams{
			WorkspaceID:        workspace,
			DocumentID:         runDocument,
			CoordinatorAgentID: runCoordinator,
			Objective:          args[0],
			MaxParallelAgents:  parallel,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s created run %s\n", color.GreenString("✓"), run.ID)
		fmt.Printf("  workspace: %s  document: %s  cap: %d\n",
			run.WorkspaceID, run.DocumentID, run.MaxParallelAgents)
		return nil
	},
}

var runStatusCmd = &cobra.Command{
	Use:   "status <run-id>",
	Short: "Show a run and its board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, _, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := svc.GetRun(args[0])
		if err != nil {
			return err
		}
		board, err := svc.Board(run.ID)
		if err != nil {
			return err
		}

		fmt.Printf("Run %s [%s]\n", run.ID, colorRunStatus(run.Status))
		fmt.Printf("  objective: %s\n", run.Objective)
		fmt.Printf("  coordinator: %s  cap: %d\n", run.CoordinatorAgentID, run.MaxParallelAgents)
		fmt.Printf("  todo: %d  in progress: %d  blocked: %d  done: %d\n",
			len(board.Columns.Todo), len(board.Columns.InProgress),
			len(board.Columns.Blocked), len(board.Columns.Done))
		fmt.Printf("  remaining: %d  needs input: %d  branch proposals: %d\n",
			board.Readiness.TasksRemaining,
			board.Readiness.UnresolvedNeedsInput,
			board.Readiness.OpenBranchProposals)
		return nil
	},
}

var runCompleteCmd = newRunTransitionCmd("complete", models.RunStatusCompleted,
	"Mark a run completed (all tasks must be done)")
var runCancelCmd = newRunTransitionCmd("cancel", models.RunStatusCancelled,
	"Cancel a run")
var runBlockCmd = newRunTransitionCmd("block", models.RunStatusBlocked,
	"Mark a run blocked")
var runResumeCmd = newRunTransitionCmd("resume", models.RunStatusActive,
	"Resume a blocked run")

// newRunTransitionCmd builds the shared verb-style run transition commands.
func newRunTransitionCmd(verb string, target models.RunStatus, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <run-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, db, _, err := openService()
			if err != nil {
				return err
			}
			defer db.Close()

			run, err := svc.TransitionRun(args[0], target)
			if err != nil {
				return err
			}
			fmt.Printf("%s run %s is now %s\n", color.GreenString("✓"), run.ID, run.Status)
			return nil
		},
	}
}

var runSetParallelCmd = &cobra.Command{
	Use:   "set-parallel <run-id> <n>",
	Short: "Change the run's parallel-agent cap",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, _, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		var n int
		if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil {
			return fmt.Errorf("parse cap %q: %w", args[1], err)
		}

		run, err := svc.SetMaxParallelAgents(args[0], n)
		if err != nil {
			return err
		}
		fmt.Printf("%s cap for run %s is now %d\n", color.GreenString("✓"), run.ID, run.MaxParallelAgents)
		return nil
	},
}

var runListCmd = &cobra.Command{
	Use:   "list",
	Short: "List runs in a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cfg, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		workspace := runWorkspace
		if workspace == "" {
			workspace = cfg.Defaults.WorkspaceID
		}

		runs, err := db.ListRunsByWorkspace(workspace)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Printf("No runs in workspace %s.\n", workspace)
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  [%s]  %s\n", r.ID, colorRunStatus(r.Status), r.Objective)
		}
		return nil
	},
}

// colorRunStatus renders a run status with its conventional color.
func colorRunStatus(s models.RunStatus) string {
	switch s {
	case models.RunStatusActive:
		return color.GreenString(string(s))
	case models.RunStatusBlocked:
		return color.YellowString(string(s))
	case models.RunStatusCancelled:
		return color.RedString(string(s))
	default:
		return string(s)
	}
}

func init() {
	runCreateCmd.Flags().StringVar(&runWorkspace, "workspace", "", "Workspace id (defaults to config)")
	runCreateCmd.Flags().StringVar(&runDocument, "document", "", "Shared document id")
	runCreateCmd.Flags().StringVar(&runCoordinator, "coordinator", "", "Coordinator agent id")
	runCreateCmd.Flags().IntVar(&runParallel, "max-parallel", 0, "Parallel-agent cap, 1-10 (defaults to config)")
	runCreateCmd.MarkFlagRequired("document")
	runCreateCmd.MarkFlagRequired("coordinator")

	runListCmd.Flags().StringVar(&runWorkspace, "workspace", "", "Workspace id (defaults to config)")

	runCmd.AddCommand(runCreateCmd)
	runCmd.AddCommand(runStatusCmd)
	runCmd.AddCommand(runListCmd)
	runCmd.AddCommand(runCompleteCmd)
	runCmd.AddCommand(runCancelCmd)
	runCmd.AddCommand(runBlockCmd)
	runCmd.AddCommand(runResumeCmd)
	runCmd.AddCommand(runSetParallelCmd)
}
