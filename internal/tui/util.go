package tui

import (
	"os/exec"
	"runtime"

	"github.com/wavefeed/wavefeed/internal/uilog"
)

// openURL hands a URL to the platform's default opener. Playback is the
// browser's job; failures are logged, not surfaced.
func openURL(rawURL string) {
	if rawURL == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return
	}
	if err := cmd.Start(); err != nil {
		uilog.Log.Warn("open url failed", "url", rawURL, "error", err)
	}
}
