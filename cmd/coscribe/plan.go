package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coscribe/coscribe/internal/plan"
)

var (
	proposeWorkspace   string
	proposeDocument    string
	proposeCoordinator string
	proposeOut         string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create runs from plan files",
}

var planApplyCmd = &cobra.Command{
	Use:   "apply <plan.yaml>",
	Short: "Create a run and its tasks from a plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, _, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := plan.LoadFile(args[0])
		if err != nil {
			return err
		}

		res, err := plan.Apply(svc, p)
		if err != nil {
			return err
		}

		fmt.Printf("%s created run %s with %d tasks\n",
			color.GreenString("✓"), res.Run.ID, len(res.Tasks))
		for _, t := range res.Tasks {
			fmt.Printf("  %s  %s\n", t.ID, t.Title)
		}
		return nil
	},
}

var planProposeCmd = &cobra.Command{
	Use:   "propose <objective>",
	Short: "Ask the model for a task breakdown",
	Long: `Ask the configured Anthropic model to propose a task breakdown
for an objective. The result is written as a plan file that can be
reviewed, edited and applied with 'coscribe plan apply'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadValidatedConfig()
		if err != nil {
			return err
		}

		client, err := plan.NewClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
		if err != nil {
			return err
		}

		drafts, err := plan.NewProposer(client).Propose(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		p := &plan.Plan{
			Workspace:         proposeWorkspace,
			Document:          proposeDocument,
			Coordinator:       proposeCoordinator,
			Objective:         args[0],
			MaxParallelAgents: cfg.Defaults.MaxParallelAgents,
			Tasks:             drafts,
		}
		if p.Workspace == "" {
			p.Workspace = cfg.Defaults.WorkspaceID
		}

		data, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal plan: %w", err)
		}

		if proposeOut == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(proposeOut, data, 0644); err != nil {
			return fmt.Errorf("write plan file: %w", err)
		}
		fmt.Printf("%s wrote %d tasks to %s\n", color.GreenString("✓"), len(drafts), proposeOut)
		return nil
	},
}

func init() {
	planProposeCmd.Flags().StringVar(&proposeWorkspace, "workspace", "", "Workspace id for the plan")
	planProposeCmd.Flags().StringVar(&proposeDocument, "document", "", "Shared document id")
	planProposeCmd.Flags().StringVar(&proposeCoordinator, "coordinator", "", "Coordinator agent id")
	planProposeCmd.Flags().StringVarP(&proposeOut, "out", "o", "", "Write the plan to a file instead of stdout")

	planCmd.AddCommand(planApplyCmd)
	planCmd.AddCommand(planProposeCmd)
}
