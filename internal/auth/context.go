package auth

import "context"

type ctxKey string

const userIDCtxKey ctxKey = "auth-user-id"

func CtxWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// UserIDFromCtx returns the id of the authenticated user, set by the auth middleware
func UserIDFromCtx(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(int)
	return userID, ok
}
