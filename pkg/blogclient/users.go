package blogclient

import (
	"context"
	"fmt"
	"net/http"
)

// GetUser fetches a public profile.
func (c *Client) GetUser(ctx context.Context, userID uint) (*User, error) {
	var user User
	path := fmt.Sprintf("/api/user/%d", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers fetches a window of accounts with totals. Admin only.
func (c *Client) GetUsers(ctx context.Context, startIndex, limit int) (*UsersPage, error) {
	var page UsersPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/getusers"+listQuery(startIndex, limit), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateUser edits an account. When the principal updates their own
// profile, the session snapshot is refreshed with the returned user.
func (c *Client) UpdateUser(ctx context.Context, userID uint, req UpdateUserRequest) (*User, error) {
	if !c.session.Snapshot().SignedIn() {
		return nil, ErrSignInRequired
	}

	var user User
	path := fmt.Sprintf("/api/user/update/%d", userID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &user); err != nil {
		return nil, err
	}
	c.session.UpdateSuccess(&user)
	return &user, nil
}

// DeleteUser removes an account after the Confirmer approves. Deleting the
// principal's own account clears the local session; the caller should then
// route to sign-in.
func (c *Client) DeleteUser(ctx context.Context, userID uint) error {
	snap := c.session.Snapshot()
	if !snap.SignedIn() {
		return ErrSignInRequired
	}
	if err := c.confirm(fmt.Sprintf("delete account %d", userID)); err != nil {
		return err
	}

	path := fmt.Sprintf("/api/user/delete/%d", userID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	if snap.CurrentUser.ID == userID {
		c.session.DeleteUserSuccess()
	}
	return nil
}
