package blogclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_SignInFlow(t *testing.T) {
	s := NewSessionStore()

	snap := s.Snapshot()
	assert.False(t, snap.SignedIn())
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)

	require.True(t, s.SignInStart())
	assert.True(t, s.Snapshot().Loading)

	// A second submission while the first is in flight is dropped.
	assert.False(t, s.SignInStart())

	s.SignInSuccess(&User{ID: 7, Username: "wanderer88"})
	snap = s.Snapshot()
	assert.False(t, snap.Loading)
	require.True(t, snap.SignedIn())
	assert.Equal(t, uint(7), snap.CurrentUser.ID)
}

func TestSessionStore_FailureKeepsPrincipal(t *testing.T) {
	s := NewSessionStore()
	s.SignInSuccess(&User{ID: 7, Username: "wanderer88"})

	require.True(t, s.SignInStart())
	s.SignInFailure(errors.New("invalid credentials"))

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.EqualError(t, snap.Err, "invalid credentials")
	require.True(t, snap.SignedIn())
	assert.Equal(t, uint(7), snap.CurrentUser.ID)

	// Starting a new attempt clears the stale error.
	require.True(t, s.SignInStart())
	assert.NoError(t, s.Snapshot().Err)
}

func TestSessionStore_UpdateSuccess(t *testing.T) {
	s := NewSessionStore()

	// No principal: nothing to update.
	s.UpdateSuccess(&User{ID: 7, Username: "wanderer88"})
	assert.False(t, s.Snapshot().SignedIn())

	s.SignInSuccess(&User{ID: 7, Username: "wanderer88"})

	// Updating a different account must not swap identities.
	s.UpdateSuccess(&User{ID: 8, Username: "somebodyelse"})
	assert.Equal(t, uint(7), s.Snapshot().CurrentUser.ID)

	s.UpdateSuccess(&User{ID: 7, Username: "wanderer99"})
	assert.Equal(t, "wanderer99", s.Snapshot().CurrentUser.Username)
}

func TestSessionStore_SignOutAndDelete(t *testing.T) {
	s := NewSessionStore()

	s.SignInSuccess(&User{ID: 7})
	s.SignOut()
	assert.False(t, s.Snapshot().SignedIn())

	s.SignInSuccess(&User{ID: 7})
	s.DeleteUserSuccess()
	assert.False(t, s.Snapshot().SignedIn())
}

func TestSessionStore_SnapshotIsCopy(t *testing.T) {
	s := NewSessionStore()
	s.SignInSuccess(&User{ID: 7, Username: "wanderer88"})

	snap := s.Snapshot()
	snap.CurrentUser.Username = "mutated"

	assert.Equal(t, "wanderer88", s.Snapshot().CurrentUser.Username)
}
