// Package i18n localizes wavefeed's user-facing strings.
//
// Usage:
//
//	i18n.Init("en")                                   // at startup
//	i18n.T("feed.empty", "No activity yet")           // simple string
//	i18n.Tf("feed.loaded", "%d activities", count)    // with fmt args
package i18n

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	localizer *i18n.Localizer
)

// Init loads the message catalogs and activates the given language,
// falling back to English. Safe to call again after a config change.
func Init(lang string) {
	mu.Lock()
	defer mu.Unlock()

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, _ := localeFS.ReadDir("locales")
	for _, e := range entries {
		_, _ = bundle.LoadMessageFileFS(localeFS, "locales/"+e.Name())
	}

	localizer = i18n.NewLocalizer(bundle, lang, "en")
}

// T returns the localized string for id, with defaultMsg as the
// English fallback.
func T(id string, defaultMsg string) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()

	if l == nil {
		return defaultMsg
	}
	s, err := l.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: defaultMsg},
	})
	if err != nil {
		return defaultMsg
	}
	return s
}

// Tf returns the localized string with fmt.Sprintf-style formatting.
func Tf(id string, defaultMsg string, args ...any) string {
	return fmt.Sprintf(T(id, defaultMsg), args...)
}

// ResolveLocale determines the active locale.
// Priority: WAVEFEED_LANG > configLang > LC_ALL/LANG > "en".
func ResolveLocale(configLang string) string {
	if v := os.Getenv("WAVEFEED_LANG"); v != "" {
		return v
	}
	if configLang != "" {
		return configLang
	}
	for _, env := range []string{"LC_ALL", "LANG"} {
		if v := os.Getenv(env); v != "" {
			return normalizeLocale(v)
		}
	}
	return "en"
}

// normalizeLocale converts a POSIX locale like "es_MX.UTF-8" to the
// BCP 47 form "es-MX".
func normalizeLocale(posix string) string {
	if i := strings.IndexByte(posix, '.'); i >= 0 {
		posix = posix[:i]
	}
	return strings.ReplaceAll(posix, "_", "-")
}
