package tui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/wavefeed/wavefeed/internal/api"
)

func termSizeOpts() []tea.ProgramOption {
	var opts []tea.ProgramOption
	for _, fd := range []int{int(os.Stdout.Fd()), int(os.Stdin.Fd()), int(os.Stderr.Fd())} {
		if term.IsTerminal(fd) {
			w, h, err := term.GetSize(fd)
			if err == nil && w > 0 && h > 0 {
				opts = append(opts, tea.WithWindowSize(w, h))
				break
			}
		}
	}
	return opts
}

// Run starts the feed TUI against client and blocks until the user
// quits.
func Run(client *api.Client, pageSize int) error {
	p := tea.NewProgram(NewModel(client, pageSize), termSizeOpts()...)
	_, err := p.Run()
	return err
}
