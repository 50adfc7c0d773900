package handler

import (
	"context"

	"github.com/tempohq/tempo/backend/internal/auth"
	"github.com/tempohq/tempo/backend/internal/domain"
)

type contextKey string

const (
	claimsCtxKey   contextKey = "claims"
	identityCtxKey contextKey = "identity"
	employeeCtxKey contextKey = "employee"
)

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*auth.Claims)
	return claims, ok
}

func withIdentity(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, identityCtxKey, user)
}

func identityFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(identityCtxKey).(*domain.User)
	return user, ok
}

func withEmployee(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, employeeCtxKey, user)
}

func employeeFromContext(ctx context.Context) *domain.User {
	return ctx.Value(employeeCtxKey).(*domain.User)
}
