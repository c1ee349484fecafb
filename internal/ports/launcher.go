package ports

// URLOpener defines the interface for opening a URL in the user's browser,
// used to hand off the interactive OAuth login.
type URLOpener interface {
	// OpenURL opens the URL with the platform's default browser.
	OpenURL(url string) error
}
