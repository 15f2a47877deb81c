package auth

import (
	"context"
	"errors"
)

var ErrNotLoggedIn = errors.New("not logged in")

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Checker resolves a session token to the id of the logged in user.
// Returns ErrNotLoggedIn for unknown or expired tokens.
type Checker interface {
	LoggedInUser(ctx context.Context, token string) (int, error)
}
