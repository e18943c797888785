package blogclient

import (
	"context"
	"net/http"
)

// SignUp registers a new account. The server signs the account in and the
// session cookie lands in the jar, so the store is updated on success.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	if !c.session.SignInStart() {
		return nil, ErrBusy
	}

	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", req, &user); err != nil {
		c.session.SignInFailure(err)
		return nil, err
	}
	c.session.SignInSuccess(&user)
	return &user, nil
}

// SignIn authenticates with email and password. Duplicate submissions while
// an attempt is in flight are dropped with ErrBusy. On failure the session
// records the error and keeps any previous principal.
func (c *Client) SignIn(ctx context.Context, email, password string) (*User, error) {
	if !c.session.SignInStart() {
		return nil, ErrBusy
	}

	var user User
	req := SignInRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signin", req, &user); err != nil {
		c.session.SignInFailure(err)
		return nil, err
	}
	c.session.SignInSuccess(&user)
	return &user, nil
}

// GoogleSignIn authenticates with a verified Google profile, provisioning
// an account on first use.
func (c *Client) GoogleSignIn(ctx context.Context, req GoogleSignInRequest) (*User, error) {
	if !c.session.SignInStart() {
		return nil, ErrBusy
	}

	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/google", req, &user); err != nil {
		c.session.SignInFailure(err)
		return nil, err
	}
	c.session.SignInSuccess(&user)
	return &user, nil
}

// SignOut revokes the session server-side and clears the local principal.
// The local session is cleared even if the server call fails; a stale
// cookie is worthless once the user intends to leave.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/user/signout", nil, nil)
	c.session.SignOut()
	return err
}
