// Package utils holds small helpers shared by the server and the client:
// context keys, session token signing and parsing, JSON response writing, the
// resty client constructor and item id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so that values set here never
// collide with string keys from other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the context key under which the auth middleware stores
// the authenticated account id.
var AccountIDCtxKey = contextKey("accountID")

// WithAccountID returns a copy of ctx carrying accountID.
func WithAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, AccountIDCtxKey, accountID)
}

// GetAccountIDFromContext returns the account id stored by the auth
// middleware. ok is false when the value is missing or not an int64.
func GetAccountIDFromContext(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(int64)
	return accountID, ok
}
