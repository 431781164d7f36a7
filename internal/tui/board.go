package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/rules"
	"github.com/Protocol-M4/DISCIPLINE-HUB-v1.2/internal/state"
)

// RunBoard opens the interactive weekly grid. Edits are coalesced through
// the saver; the pending snapshot is flushed before returning so quitting
// never loses the last toggles.
func RunBoard(ctx context.Context, store *state.HistoryStore, cat rules.Catalog, saver *state.Saver, now func() time.Time, out io.Writer) error {
	m := newGridModel(store, cat, saver, now)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	saver.Flush(ctx)
	return err
}
