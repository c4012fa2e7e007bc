package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wavefeed/wavefeed/internal/uilog"
)

// Activity is the wire shape the stub emits, including the legacy URL
// aliases real servers still produce, so the client's normalization
// path gets exercised end to end.
type Activity struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	CreatedAt   string         `json:"created_at"`
	Status      string         `json:"status"`
	TemplateID  string         `json:"template_id,omitempty"`
	TaskID      string         `json:"task_id,omitempty"`
	AudioURL    string         `json:"audio_url,omitempty"`
	StreamURL   string         `json:"stream_url,omitempty"`
	ImageURL    string         `json:"image_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Template is the wire shape for the template lookup.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Style       string `json:"style,omitempty"`
}

// FixtureSet is the on-disk format for --fixtures files.
type FixtureSet struct {
	Activities []Activity `json:"activities"`
	Templates  []Template `json:"templates"`
}

// Fixtures holds the stub's replayable data. Safe for concurrent reads
// while a watcher swaps in a reloaded set.
type Fixtures struct {
	mu  sync.RWMutex
	set FixtureSet
}

// NewFixtures returns fixtures seeded with generated demo data.
func NewFixtures() *Fixtures {
	return &Fixtures{set: demoSet(54)}
}

// LoadFile replaces the current set with the contents of a JSON file.
func (f *Fixtures) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var set FixtureSet
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	f.mu.Lock()
	f.set = set
	f.mu.Unlock()
	uilog.Log.Info("fixtures loaded", "path", path, "activities", len(set.Activities))
	return nil
}

// ActivityPage returns the 1-based page window and total count.
func (f *Fixtures) ActivityPage(page, limit int) []Activity {
	f.mu.RLock()
	defer f.mu.RUnlock()

	start := (page - 1) * limit
	if start < 0 || start >= len(f.set.Activities) {
		return nil
	}
	end := start + limit
	if end > len(f.set.Activities) {
		end = len(f.set.Activities)
	}
	return append([]Activity(nil), f.set.Activities[start:end]...)
}

// TemplateByID looks up one template.
func (f *Fixtures) TemplateByID(id string) (Template, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.set.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Watch reloads the fixtures file whenever it changes on disk, until
// the context is canceled. Editors that replace-on-save are handled by
// watching the directory rather than the file itself.
func (f *Fixtures) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := f.LoadFile(path); err != nil {
				uilog.Log.Warn("fixtures reload failed", "error", err)
			}
			fixturesReloads.Inc()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			uilog.Log.Warn("fixtures watch error", "error", err)
		}
	}
}

var demoTemplates = []Template{
	{ID: "tpl-1", Name: "Arena Anthem", Description: "Big choruses, bigger drums.", Style: "rock"},
	{ID: "tpl-2", Name: "Midnight Drive", Description: "Synthwave with a steady pulse.", Style: "electronic"},
	{ID: "tpl-3", Name: "Back Porch", Description: "Acoustic, unhurried, warm.", Style: "folk"},
}

// demoSet fabricates n activity records cycling through every kind and
// status combination the client knows about, newest first.
func demoSet(n int) FixtureSet {
	titles := []string{"Epic Rock", "Quiet Jazz", "Neon Skyline", "Back Porch Blues", "Static Bloom", "Glass Parade"}
	now := time.Now().UTC()

	set := FixtureSet{Templates: demoTemplates}
	for i := 0; i < n; i++ {
		age := time.Duration(i) * 37 * time.Minute
		act := Activity{
			ID:        fmt.Sprintf("act-%03d", i+1),
			CreatedAt: now.Add(-age).Format(time.RFC3339),
			TaskID:    fmt.Sprintf("T-%03d", i+1),
		}
		title := titles[i%len(titles)]
		switch i % 4 {
		case 0:
			act.Type = "generation-completed"
			act.Title = title
			act.Status = "success"
			act.StreamURL = fmt.Sprintf("https://cdn.waveform.example/%s.mp3", act.ID)
			act.Metadata = map[string]any{"track_count": 1 + i%3, "duration": "3:21"}
		case 1:
			act.Type = "template-used"
			tpl := demoTemplates[i%len(demoTemplates)]
			act.Title = "Used " + tpl.Name
			act.Status = "success"
			act.TemplateID = tpl.ID
			act.Metadata = map[string]any{"template_name": tpl.Name}
		case 2:
			act.Type = "generation-completed"
			act.Title = title + " (rendering)"
			act.Status = "pending"
		default:
			act.Type = "error-occurred"
			act.Title = "Generation failed"
			act.Description = "The model timed out while rendering stems."
			act.Status = "error"
		}
		set.Activities = append(set.Activities, act)
	}
	return set
}
