package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coscribe/coscribe/internal/config"
	"github.com/coscribe/coscribe/internal/orchestrator"
	"github.com/coscribe/coscribe/internal/state"
)

var rootCmd = &cobra.Command{
	Use:   "coscribe",
	Short: "Agent run orchestration for shared documents",
	Long: `Coscribe coordinates autonomous agents collaborating on a shared
document. A coordinator agent opens a run, carves the objective into
tasks with declared document scopes, and coscribe enforces the rules
that keep the agents out of each other's way:

- write tasks with overlapping scopes cannot coexist
- the number of in-progress tasks never exceeds the run's cap
- a task cannot finish before its dependencies
- a run cannot complete with work or open questions outstanding

Use 'coscribe board <run-id>' to watch a run's progress live.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadValidatedConfig loads and validates config without touching the
// database.
func loadValidatedConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openService loads config, opens the state database and wires the
// orchestrator. The caller must Close the returned store.
func openService() (*orchestrator.Service, *state.DB, *config.Config, error) {
	cfg, err := loadValidatedConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = databasePath()
	}

	db, err := state.Open(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	svc := orchestrator.New(db, db, orchestrator.NopNotifier{})
	return svc, db, cfg, nil
}

// databasePath picks the project database when one exists, otherwise
// the global one.
func databasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return state.DefaultPath()
	}
	projectPath := state.ProjectPath(cwd)
	if _, err := os.Stat(projectPath); err == nil {
		return projectPath
	}
	return state.DefaultPath()
}
