package views

// SwitchToHelpMsg switches the app to the help view.
type SwitchToHelpMsg struct{}

// SwitchToCardsMsg switches the app back to the character cards.
type SwitchToCardsMsg struct{}

// RetryAuthMsg asks the app to start a manual sign-in.
type RetryAuthMsg struct{}

// OrderChangedMsg reports that the user changed the display order.
type OrderChangedMsg struct {
	Order []string
}

// ViewState holds sizing and transient message state shared by view models.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions.
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a transient message shown below the cards.
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message.
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}
