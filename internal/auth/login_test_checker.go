package auth

import "context"

// LoginTestChecker is used in unit tests instead of the redis backed LoginChecker
type LoginTestChecker struct {
	// token -> user id
	LoggedSessions map[string]int
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]int{},
	}
}

func (lc *LoginTestChecker) LoggedInUser(_ context.Context, token string) (int, error) {
	userID, ok := lc.LoggedSessions[token]
	if !ok {
		return 0, ErrNotLoggedIn
	}
	return userID, nil
}
