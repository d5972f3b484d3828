package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/board/internal/ui/views"
)

// App is the root bubbletea model
type App struct {
	board *views.BoardView
}

// NewApp creates a new application around store. A non-nil openErr means
// the store could not be opened; the board still runs but warns that
// nothing will be saved.
func NewApp(ctx context.Context, store views.GroupStore, opts views.Options, openErr error) *App {
	board := views.NewBoardView(ctx, store, opts)
	if openErr != nil {
		board.SetStatus("Storage unavailable, changes will not be saved: "+openErr.Error(), true)
	}
	return &App{board: board}
}

func (a *App) Init() tea.Cmd {
	return a.board.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.board.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.board.View()
}

// Close flushes pending store writes
func (a *App) Close() error {
	return a.board.Close()
}
