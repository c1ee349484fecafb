package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Opener implements ports.URLOpener with the platform's default browser.
type Opener struct{}

// NewOpener creates a new browser opener.
func NewOpener() *Opener {
	return &Opener{}
}

// OpenURL opens the URL in the user's browser. $BROWSER wins when set.
func (o *Opener) OpenURL(url string) error {
	if browser := os.Getenv("BROWSER"); browser != "" {
		return exec.Command(browser, url).Start()
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("no browser opener found: set $BROWSER")
		}
		return exec.Command("xdg-open", url).Start()
	}
}
