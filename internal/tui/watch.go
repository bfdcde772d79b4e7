package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coscribe/coscribe/internal/engine"
)

// BoardFetcher loads the current board projection for a run.
type BoardFetcher interface {
	Board(runID string) (*engine.Board, error)
}

// tickMsg triggers a board refresh.
type tickMsg time.Time

// boardMsg carries a freshly loaded board.
type boardMsg struct {
	board *engine.Board
	err   error
}

// WatchModel is the bubbletea model for the live board view.
type WatchModel struct {
	fetcher  BoardFetcher
	runID    string
	interval time.Duration
	renderer *BoardRenderer

	board *engine.Board
	err   error
}

// NewWatchModel creates a live board model refreshing at the given interval.
func NewWatchModel(fetcher BoardFetcher, runID string, interval time.Duration) WatchModel {
	if interval <= 0 {
		interval = time.Second
	}
	return WatchModel{
		fetcher:  fetcher,
		runID:    runID,
		interval: interval,
		renderer: NewBoardRenderer(),
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.fetch()
		}
	case tea.WindowSizeMsg:
		m.renderer.SetWidth(msg.Width)
	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())
	case boardMsg:
		m.board = msg.board
		m.err = msg.err
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("board error: %v\n\npress q to quit", m.err)
	}
	if m.board == nil {
		return "loading board...\n\npress q to quit"
	}
	return m.renderer.Render(m.board) + "\n\nq: quit  r: refresh"
}

func (m WatchModel) fetch() tea.Cmd {
	return func() tea.Msg {
		board, err := m.fetcher.Board(m.runID)
		return boardMsg{board: board, err: err}
	}
}

func (m WatchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Watch runs the live board view until the user quits.
func Watch(fetcher BoardFetcher, runID string, interval time.Duration) error {
	p := tea.NewProgram(NewWatchModel(fetcher, runID, interval))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board view: %w", err)
	}
	return nil
}
