package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/wavefeed/wavefeed/internal/feed"
)

// maxPromos caps the promoted-track row; promoting a fourth track
// drops the oldest tile.
const maxPromos = 3

// promoTile is one promoted track shown in the row above the feed.
type promoTile struct {
	Title  string
	TaskID string
}

// addPromo pins item at the front of the promo row. Promoting an
// already promoted track moves it to the front instead of duplicating
// the tile.
func (m *Model) addPromo(it feed.Item) {
	tile := promoTile{Title: it.Title, TaskID: it.TaskID}

	kept := m.promos[:0]
	for _, p := range m.promos {
		if p.TaskID == "" || p.TaskID != tile.TaskID {
			kept = append(kept, p)
		}
	}
	m.promos = append([]promoTile{tile}, kept...)
	if len(m.promos) > maxPromos {
		m.promos = m.promos[:maxPromos]
	}

	if m.ready {
		m.vp.SetHeight(m.bodyHeight())
		m.rebuild()
		m.ensureVisible()
	}
}

// promoTiles derives the promo row: pinned tracks first, remaining
// slots filled with the most recent successful generations from the
// store. Recomputed on every render, so the row follows the feed.
func (m Model) promoTiles() []promoTile {
	tiles := append([]promoTile(nil), m.promos...)
	if len(tiles) >= maxPromos {
		return tiles[:maxPromos]
	}

	seen := make(map[string]bool, len(tiles))
	for _, p := range tiles {
		if p.TaskID != "" {
			seen[p.TaskID] = true
		}
	}
	for _, it := range m.ctrl.Store().All() {
		if len(tiles) >= maxPromos {
			break
		}
		if it.Kind != feed.KindGenerationCompleted || it.Status != feed.StatusSuccess {
			continue
		}
		if it.TaskID != "" && seen[it.TaskID] {
			continue
		}
		tiles = append(tiles, promoTile{Title: it.Title, TaskID: it.TaskID})
		if it.TaskID != "" {
			seen[it.TaskID] = true
		}
	}
	return tiles
}

// promoHeight is the number of lines the promo row occupies.
func (m Model) promoHeight() int {
	if len(m.promoTiles()) == 0 {
		return 0
	}
	return lipgloss.Height(m.renderPromos())
}

func (m Model) renderPromos() string {
	tiles := m.promoTiles()
	if len(tiles) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(tiles))
	for _, p := range tiles {
		title := ansi.Truncate(p.Title, 20, "...")
		body := m.styles.PromoTitle.Render("♫ top track") + "\n" + title
		rendered = append(rendered, m.styles.PromoTile.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
