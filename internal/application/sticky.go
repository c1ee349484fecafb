package application

// stickyError is a two-state machine (clear -> set -> clear) for an error
// category. Transitions happen only on explicit success or failure events,
// so a flag can never be reset by an unrelated code path.
type stickyError struct {
	set bool
	err error
}

// Set records a failure of this category, retaining the triggering error.
func (s *stickyError) Set(err error) {
	s.set = true
	s.err = err
}

// Clear resets the flag. Called only from the success event of the same
// category (or the category that dominates it).
func (s *stickyError) Clear() {
	s.set = false
	s.err = nil
}

// IsSet reports whether the category is currently failed.
func (s *stickyError) IsSet() bool { return s.set }

// Err returns the error that set the flag, or nil.
func (s *stickyError) Err() error { return s.err }
