package tui

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wavefeed/wavefeed/internal/api"
	"github.com/wavefeed/wavefeed/internal/i18n"
)

// templateModal fetches a template and asks the user to confirm
// applying it to a new generation.
type templateModal struct {
	client     *api.Client
	templateID string
	styles     Styles
	spin       spinner.Model
	width      int
	height     int

	template api.Template
	loaded   bool
	err      error

	confirm bool // true = apply button selected
}

func newTemplateModal(client *api.Client, templateID string, styles Styles, width, height int) *templateModal {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("81"))),
	)
	return &templateModal{
		client:     client,
		templateID: templateID,
		styles:     styles,
		spin:       s,
		width:      width,
		height:     height,
		confirm:    true,
	}
}

func (m *templateModal) Init() tea.Cmd {
	client := m.client
	id := m.templateID
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		tpl, err := client.Template(ctx, id)
		return templateMsg{template: tpl, err: err}
	}
	return tea.Batch(fetch, m.spin.Tick)
}

func (m *templateModal) update(msg tea.Msg) (overlayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case templateMsg:
		m.loaded = true
		m.template = msg.template
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, closeOverlay
		case "left", "right", "tab", "h", "l":
			m.confirm = !m.confirm
			return m, nil
		case "enter":
			if m.err != nil {
				return m, closeOverlay
			}
			if !m.loaded {
				return m, nil
			}
			if !m.confirm {
				return m, closeOverlay
			}
			tpl := m.template
			return m, func() tea.Msg { return templateAppliedMsg{template: tpl} }
		}
	}
	return m, nil
}

func (m *templateModal) viewContent() string {
	title := m.styles.Header.Render(i18n.T("template.title", "Apply template"))

	var body string
	switch {
	case m.err != nil:
		body = m.styles.ErrorPanel.Render(m.err.Error())
	case !m.loaded:
		body = m.spin.View() + " " + i18n.T("feed.loading", "Loading activity...")
	default:
		body = m.styles.PromoTitle.Render(m.template.Name)
		if m.template.Style != "" {
			body += "\n" + m.styles.HelpText.Render(m.template.Style)
		}
		if m.template.Description != "" {
			body += "\n\n" + m.template.Description
		}
		body += "\n\n" + m.renderButtons()
		body += "\n\n" + m.styles.HelpText.Render(i18n.T("template.confirm", "enter: apply  ·  esc: cancel"))
	}

	return m.styles.Overlay.Render(fmt.Sprintf("%s\n\n%s", title, body))
}

func (m *templateModal) renderButtons() string {
	apply := i18n.T("template.apply", "Apply")
	cancel := i18n.T("admin.cancel", "Cancel")

	selected := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("212")).
		Padding(0, 2)
	unselected := lipgloss.NewStyle().
		Foreground(lipgloss.Color("247")).
		Padding(0, 2)

	if m.confirm {
		return lipgloss.JoinHorizontal(lipgloss.Center, selected.Render(apply), "  ", unselected.Render(cancel))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, unselected.Render(apply), "  ", selected.Render(cancel))
}
