package blogclient

import "sync"

// Session is an immutable snapshot of the authentication state.
type Session struct {
	CurrentUser *User
	Loading     bool
	Err         error
}

// SignedIn reports whether a principal is present.
func (s Session) SignedIn() bool {
	return s.CurrentUser != nil
}

// SessionStore holds the authentication state and applies reducer-style
// transitions. All methods are safe for concurrent use; Snapshot returns a
// copy, so callers never observe a partial transition.
type SessionStore struct {
	mu      sync.Mutex
	current *User
	loading bool
	err     error
}

// NewSessionStore returns an empty, signed-out store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Snapshot returns the current session state. The returned user is a copy.
func (s *SessionStore) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionStore) snapshotLocked() Session {
	snap := Session{Loading: s.loading, Err: s.err}
	if s.current != nil {
		u := *s.current
		snap.CurrentUser = &u
	}
	return snap
}

// SignInStart marks a sign-in attempt as in flight and clears any previous
// error. It returns false when an attempt is already in flight, so callers
// can drop duplicate submissions.
func (s *SessionStore) SignInStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	s.err = nil
	return true
}

// SignInSuccess installs the authenticated principal.
func (s *SessionStore) SignInSuccess(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.current = &u
	s.loading = false
	s.err = nil
}

// SignInFailure records the failure. The previous principal, if any, is
// left untouched.
func (s *SessionStore) SignInFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
}

// SignOut clears the principal and any error state.
func (s *SessionStore) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.loading = false
	s.err = nil
}

// UpdateSuccess replaces the principal with its updated profile. A nil
// current principal is left unchanged; profile updates for other accounts
// must not adopt their identity.
func (s *SessionStore) UpdateSuccess(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != user.ID {
		return
	}
	u := *user
	s.current = &u
	s.err = nil
}

// DeleteUserSuccess clears the principal after their account is deleted.
func (s *SessionStore) DeleteUserSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.loading = false
	s.err = nil
}
