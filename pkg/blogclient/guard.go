package blogclient

// Decision is the outcome of a route guard check.
type Decision int

const (
	// Allow lets navigation proceed.
	Allow Decision = iota
	// RedirectSignIn sends an unauthenticated visitor to the sign-in view.
	RedirectSignIn
	// RedirectNotFound hides privileged views from non-admins without
	// revealing that they exist.
	RedirectNotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectSignIn:
		return "redirect-sign-in"
	case RedirectNotFound:
		return "redirect-not-found"
	default:
		return "unknown"
	}
}

// GuardUser decides whether a signed-in-only view may be shown.
func GuardUser(s Session) Decision {
	if !s.SignedIn() {
		return RedirectSignIn
	}
	return Allow
}

// GuardAdmin decides whether an admin-only view may be shown. Visitors
// without a session are sent to sign-in; signed-in non-admins get a
// not-found redirect rather than a forbidden page.
func GuardAdmin(s Session) Decision {
	if !s.SignedIn() {
		return RedirectSignIn
	}
	if !s.CurrentUser.IsAdmin {
		return RedirectNotFound
	}
	return Allow
}
