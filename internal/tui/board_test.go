package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coscribe/coscribe/internal/engine"
	"github.com/coscribe/coscribe/pkg/models"
)

func sampleBoard() *engine.Board {
	return &engine.Board{
		RunID: "run-1",
		Columns: engine.Columns{
			Todo: []*models.AgentTask{
				{ID: "t1", Title: "Outline the report", Status: models.TaskStatusTodo, AssignedAgentID: "agent-1"},
			},
			InProgress: []*models.AgentTask{
				{ID: "t2", Title: "Draft section one", Status: models.TaskStatusInProgress, AssignedAgentID: "agent-2"},
			},
			Done: []*models.AgentTask{
				{ID: "t3", Title: "Collect sources", Status: models.TaskStatusDone},
			},
		},
		Readiness: engine.Readiness{
			TasksRemaining:       2,
			UnresolvedNeedsInput: 1,
		},
	}
}

func TestRenderBoard(t *testing.T) {
	out := NewBoardRenderer().Render(sampleBoard())

	for _, want := range []string{
		"Run run-1",
		"Todo (1)",
		"In Progress (1)",
		"Blocked (0)",
		"Done (1)",
		"Outline the report",
		"@agent-2",
		"remaining: 2",
		"needs input: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRenderNilBoard(t *testing.T) {
	if out := NewBoardRenderer().Render(nil); out != "" {
		t.Errorf("nil board should render empty, got %q", out)
	}
}

func TestTaskLineTruncation(t *testing.T) {
	task := &models.AgentTask{
		Title:  strings.Repeat("long title ", 20),
		Status: models.TaskStatusTodo,
	}
	line := taskLine(task, 20)
	if len(line) > 20 {
		t.Errorf("line length = %d, want at most 20", len(line))
	}
	if !strings.HasSuffix(line, "...") {
		t.Errorf("truncated line should end with ellipsis, got %q", line)
	}
}

// stubFetcher serves a fixed board or error.
type stubFetcher struct {
	board *engine.Board
	err   error
}

func (s stubFetcher) Board(string) (*engine.Board, error) {
	return s.board, s.err
}

func TestWatchModelUpdate(t *testing.T) {
	m := NewWatchModel(stubFetcher{board: sampleBoard()}, "run-1", time.Second)

	updated, _ := m.Update(boardMsg{board: sampleBoard()})
	wm := updated.(WatchModel)
	if wm.board == nil {
		t.Fatal("board should be set after boardMsg")
	}
	if !strings.Contains(wm.View(), "Run run-1") {
		t.Error("view should render the board")
	}

	updated, _ = wm.Update(boardMsg{err: errors.New("gone")})
	wm = updated.(WatchModel)
	if !strings.Contains(wm.View(), "board error") {
		t.Error("view should surface fetch errors")
	}

	_, cmd := wm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}
