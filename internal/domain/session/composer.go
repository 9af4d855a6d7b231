package session

// ComposerMode selects which create-record form is active.
type ComposerMode string

const (
	ComposerCar     ComposerMode = "car"
	ComposerBooking ComposerMode = "booking"
)

// AuthMode selects between the login and register forms.
type AuthMode string

const (
	AuthLogin    AuthMode = "login"
	AuthRegister AuthMode = "register"
)

// AuthHelp returns the helper message shown when switching auth forms.
func AuthHelp(mode AuthMode) string {
	if mode == AuthRegister {
		return "Create an account to get started."
	}
	return "Sign in to continue."
}

// AllowedComposer constrains a requested composer mode by role: only
// admins may use the car composer, everyone else is forced to booking.
func AllowedComposer(s *Session, mode ComposerMode) ComposerMode {
	if mode == ComposerCar && !s.IsAdmin() {
		return ComposerBooking
	}
	return mode
}

// DefaultComposer returns the composer mode selected right after sign-in.
func DefaultComposer(s *Session) ComposerMode {
	if s.IsAdmin() {
		return ComposerCar
	}
	return ComposerBooking
}
