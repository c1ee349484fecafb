package application

// Status messages, highest precedence first. Exactly one is shown.
const (
	StatusSystemDisabled = "Bungie.net is down for maintenance"
	StatusUnavailable    = "Bungie.net services are unavailable"
	StatusAuthError      = "Authentication failed - press r to retry"
	StatusManifestError  = "Game data download failed - restart to retry"
	StatusAuthing        = "Authenticating..."
	StatusNoMembership   = "No Destiny membership selected"
	StatusFetching       = "Fetching character data..."
	StatusNoData         = "No character data"
)

// Status derives the single human-readable status line from the current
// state snapshot. The precedence is a total order: system-disabled >
// service-unavailable > auth-error > manifest-error > not-authed >
// no-membership > manifest-not-ready > no-data > empty.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.systemDisabled.IsSet():
		return StatusSystemDisabled
	case c.unavailable.IsSet():
		return StatusUnavailable
	case c.authErr.IsSet():
		return StatusAuthError
	case c.manifestErr.IsSet():
		return StatusManifestError
	case !c.authed:
		return StatusAuthing
	case !c.auth.HasSelectedMembership():
		return StatusNoMembership
	case c.manifestData == nil:
		if s := c.manifestStage.String(); s != "" {
			return s
		}
		return "Loading game data..."
	case !c.haveSnapshots:
		if c.inFlight || c.fetching {
			return StatusFetching
		}
		return StatusNoData
	default:
		// Fully loaded; the cards speak for themselves.
		return ""
	}
}
