package cards

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/wavefeed/wavefeed/internal/feed"
)

const maxTitleWidth = 60

var (
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	audioStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	errTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func cardTitle(item feed.Item, fallback string) string {
	title := item.Title
	if title == "" {
		title = fallback
	}
	return ansi.Truncate(title, maxTitleWidth, "...")
}

// generationCard renders a completed (or failed, or still running)
// song generation: track count, duration, and whether audio is ready.
type generationCard struct{}

func (generationCard) Build(item feed.Item) Widget {
	w := Widget{
		Title: cardTitle(item, "Song generation"),
		Badge: StatusBadge(item.Status),
	}
	if n := item.MetaValue("track_count"); n != "" {
		w.Lines = append(w.Lines, detailStyle.Render(n+" tracks"))
	}
	if d := item.MetaValue("duration"); d != "" {
		w.Lines = append(w.Lines, detailStyle.Render(d))
	}
	if item.AudioURL != "" {
		w.Lines = append(w.Lines, audioStyle.Render("♫ audio ready"))
	}
	return w
}

func (generationCard) BindActions(w *Widget, item feed.Item, fn ActionFunc) {
	w.bind(ActionDetails, item, fn)
	w.bind(ActionAdminMenu, item, fn)
	if item.AudioURL != "" {
		w.bind(ActionPlay, item, fn)
	}
	if item.Status == feed.StatusSuccess {
		w.bind(ActionPromote, item, fn)
	}
	if item.TemplateID != "" {
		w.bind(ActionApplyTemplate, item, fn)
	}
}

// templateCard renders a template-used record and offers re-applying
// the same template.
type templateCard struct{}

func (templateCard) Build(item feed.Item) Widget {
	w := Widget{
		Title: cardTitle(item, "Template applied"),
		Badge: StatusBadge(item.Status),
	}
	if name := item.TemplateName(); name != "" {
		w.Lines = append(w.Lines, detailStyle.Render("template: "+name))
	}
	return w
}

func (templateCard) BindActions(w *Widget, item feed.Item, fn ActionFunc) {
	w.bind(ActionDetails, item, fn)
	w.bind(ActionAdminMenu, item, fn)
	if item.TemplateID != "" {
		w.bind(ActionApplyTemplate, item, fn)
	}
}

// historyCard is the generic variant, also used as the fallback for
// kinds this build does not know about.
type historyCard struct{}

func (historyCard) Build(item feed.Item) Widget {
	w := Widget{
		Title: cardTitle(item, "Activity"),
		Badge: StatusBadge(item.Status),
	}
	if item.Description != "" {
		w.Lines = append(w.Lines, detailStyle.Render(ansi.Truncate(item.Description, maxTitleWidth, "...")))
	}
	return w
}

func (historyCard) BindActions(w *Widget, item feed.Item, fn ActionFunc) {
	w.bind(ActionDetails, item, fn)
	w.bind(ActionAdminMenu, item, fn)
}

// errorCard renders a failed operation with the failure text and a
// retry hook.
type errorCard struct{}

func (errorCard) Build(item feed.Item) Widget {
	w := Widget{
		Title: cardTitle(item, "Something went wrong"),
		Badge: StatusBadge(feed.StatusError),
	}
	if item.Description != "" {
		w.Lines = append(w.Lines, errTextStyle.Render(ansi.Truncate(item.Description, maxTitleWidth, "...")))
	}
	if item.TaskID != "" {
		w.Lines = append(w.Lines, detailStyle.Render(fmt.Sprintf("task %s", item.TaskID)))
	}
	return w
}

func (errorCard) BindActions(w *Widget, item feed.Item, fn ActionFunc) {
	w.bind(ActionDetails, item, fn)
	w.bind(ActionRetry, item, fn)
	w.bind(ActionAdminMenu, item, fn)
}
