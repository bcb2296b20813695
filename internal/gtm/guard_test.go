package gtm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tagmanager "google.golang.org/api/tagmanager/v2"
)

func TestAccountGuardValidateAccess(t *testing.T) {
	guard := NewAccountGuard("6321366409")

	assert.NoError(t, guard.ValidateAccess("6321366409"))

	err := guard.ValidateAccess("999999")
	var perr *PermissionError
	require.Error(t, err)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "6321366409", perr.Configured)
	assert.Equal(t, "999999", perr.Requested)
	assert.Contains(t, err.Error(), "6321366409")
	assert.Contains(t, err.Error(), "999999")
}

func TestAccountGuardUnrestricted(t *testing.T) {
	guard := NewAccountGuard("")
	assert.False(t, guard.Restricted())
	assert.NoError(t, guard.ValidateAccess("999999"))
	assert.NoError(t, guard.ValidatePath("accounts/999999/containers/1"))
}

func TestAccountGuardValidatePath(t *testing.T) {
	guard := NewAccountGuard("6321366409")

	assert.NoError(t, guard.ValidatePath("accounts/6321366409/containers/222/workspaces/5"))

	err := guard.ValidatePath("accounts/999999/containers/222")
	var perr *PermissionError
	require.True(t, errors.As(err, &perr))

	err = guard.ValidatePath("bogus/path")
	var ferr *ParameterFormatError
	assert.True(t, errors.As(err, &ferr))
}

func TestAccountGuardFilterAccounts(t *testing.T) {
	accounts := []*tagmanager.Account{
		{AccountId: "1111111111", Name: "Other"},
		{AccountId: "6321366409", Name: "Mine"},
	}

	guard := NewAccountGuard("6321366409")
	filtered, err := guard.FilterAccounts(accounts)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "6321366409", filtered[0].AccountId)

	unrestricted := NewAccountGuard("")
	all, err := unrestricted.FilterAccounts(accounts)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAccountGuardFilterAccountsNotFound(t *testing.T) {
	guard := NewAccountGuard("6321366409")

	_, err := guard.FilterAccounts([]*tagmanager.Account{{AccountId: "1111111111"}})
	var perr *PermissionError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "6321366409", perr.Configured)
	assert.Empty(t, perr.Requested)
	assert.Contains(t, err.Error(), "not found in accessible accounts")
}
