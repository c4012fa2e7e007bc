package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"

	"github.com/wavefeed/wavefeed/internal/feed"
	"github.com/wavefeed/wavefeed/internal/i18n"
)

// detailModel is the full-record pane opened with enter on a card.
type detailModel struct {
	item   feed.Item
	styles Styles
	vp     viewport.Model
	width  int
	height int
}

func newDetailModel(item feed.Item, styles Styles, width, height int) *detailModel {
	m := &detailModel{
		item:   item,
		styles: styles,
		width:  width,
		height: height,
	}

	contentWidth := width - 12
	if contentWidth < 30 {
		contentWidth = 30
	}
	contentHeight := height - 10
	if contentHeight < 5 {
		contentHeight = 5
	}

	m.vp = viewport.New()
	m.vp.SetWidth(contentWidth)
	m.vp.SetHeight(contentHeight)
	m.vp.SetContent(renderItemMarkdown(item, contentWidth))
	return m
}

// renderItemMarkdown renders the full record as markdown for the
// detail viewport, falling back to the raw text when the terminal
// renderer cannot be built.
func renderItemMarkdown(item feed.Item, width int) string {
	md := itemMarkdown(item)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func itemMarkdown(item feed.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Title)
	if item.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", item.Description)
	}

	fmt.Fprintf(&b, "- **Kind:** %s\n", item.Kind)
	fmt.Fprintf(&b, "- **Status:** %s\n", item.Status)
	if !item.Timestamp.IsZero() {
		fmt.Fprintf(&b, "- **When:** %s\n", item.Timestamp.Local().Format(time.RFC1123))
	}
	if item.TaskID != "" {
		fmt.Fprintf(&b, "- **Task:** %s\n", item.TaskID)
	}
	if item.TemplateID != "" {
		fmt.Fprintf(&b, "- **Template:** %s\n", item.TemplateID)
	}
	if item.AudioURL != "" {
		fmt.Fprintf(&b, "- **Audio:** %s\n", item.AudioURL)
	}
	if item.ImageURL != "" {
		fmt.Fprintf(&b, "- **Artwork:** %s\n", item.ImageURL)
	}

	if len(item.Meta) > 0 {
		keys := make([]string, 0, len(item.Meta))
		for k := range item.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\n## Metadata\n\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, item.Meta[k])
		}
	}
	return b.String()
}

func (m *detailModel) Init() tea.Cmd { return nil }

func (m *detailModel) update(msg tea.Msg) (overlayModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "enter":
			return m, closeOverlay
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *detailModel) viewContent() string {
	help := m.styles.HelpText.Render(i18n.T("detail.help", "↑/↓ scroll · esc close"))
	return m.styles.Overlay.Render(m.vp.View() + "\n" + help)
}
