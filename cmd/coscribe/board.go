package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coscribe/coscribe/internal/tui"
)

var boardWatch bool

var boardCmd = &cobra.Command{
	Use:   "board <run-id>",
	Short: "Show the run board",
	Long: `Show the run's task board grouped by status.

With --watch, the board refreshes live until you quit with 'q'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, db, cfg, err := openService()
		if err != nil {
			return err
		}
		defer db.Close()

		if boardWatch {
			return tui.Watch(svc, args[0], cfg.Board.RefreshRate)
		}

		board, err := svc.Board(args[0])
		if err != nil {
			return err
		}
		fmt.Println(tui.NewBoardRenderer().Render(board))
		return nil
	},
}

func init() {
	boardCmd.Flags().BoolVarP(&boardWatch, "watch", "w", false, "Refresh the board live")
}
