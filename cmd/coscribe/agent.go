package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var agentWorkspace string

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage workspace agent identities",
}

var agentAddCmd = &cobra.Command{
	Use:   "add <agent-id>",
	Short: "Register an agent as active in a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cfg, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		workspace := agentWorkspace
		if workspace == "" {
			workspace = cfg.Defaults.WorkspaceID
		}

		if err := db.UpsertAgent(workspace, args[0], true); err != nil {
			return err
		}
		fmt.Printf("%s agent %s is active in %s\n", color.GreenString("✓"), args[0], workspace)
		return nil
	},
}

var agentDeactivateCmd = &cobra.Command{
	Use:   "deactivate <agent-id>",
	Short: "Deactivate an agent in a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cfg, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		workspace := agentWorkspace
		if workspace == "" {
			workspace = cfg.Defaults.WorkspaceID
		}

		if err := db.UpsertAgent(workspace, args[0], false); err != nil {
			return err
		}
		fmt.Printf("%s agent %s is inactive in %s\n", color.YellowString("✓"), args[0], workspace)
		return nil
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents in a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cfg, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		workspace := agentWorkspace
		if workspace == "" {
			workspace = cfg.Defaults.WorkspaceID
		}

		agents, err := db.ListAgentsByWorkspace(workspace)
		if err != nil {
			return err
		}
		if len(agents) == 0 {
			fmt.Printf("No agents in workspace %s.\n", workspace)
			return nil
		}
		for _, a := range agents {
			marker := color.GreenString("active")
			if !a.Active {
				marker = color.RedString("inactive")
			}
			fmt.Printf("%s  [%s]\n", a.AgentID, marker)
		}
		return nil
	},
}

func init() {
	agentCmd.PersistentFlags().StringVar(&agentWorkspace, "workspace", "", "Workspace id (defaults to config)")

	agentCmd.AddCommand(agentAddCmd)
	agentCmd.AddCommand(agentDeactivateCmd)
	agentCmd.AddCommand(agentListCmd)
}
