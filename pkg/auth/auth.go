package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	XUserNameHeader = "X-User-Name"
	XUserRoleHeader = "X-User-Role"

	TokenTTL = 24 * time.Hour
)

// JWTKey signs and verifies access tokens. Overridden from config at startup.
var JWTKey = []byte("library-admin-secret")

func SetJWTKey(secret string) {
	if secret != "" {
		JWTKey = []byte(secret)
	}
}

type Claims struct {
	Profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type contextKey int

const (
	contextKeyUserName contextKey = iota + 1
	contextKeyUserRole
)

func SetAuthContext(ctx context.Context, userName, userRole string) context.Context {
	ctx = context.WithValue(ctx, contextKeyUserName, userName)
	return context.WithValue(ctx, contextKeyUserRole, userRole)
}

func UserName(ctx context.Context) string {
	if name, ok := ctx.Value(contextKeyUserName).(string); ok {
		return name
	}
	return ""
}

func UserRole(ctx context.Context) string {
	if role, ok := ctx.Value(contextKeyUserRole).(string); ok {
		return role
	}
	return ""
}
