package userctx

import "context"

// Context key type
type contextKey string

const (
	principalKey    contextKey = "principal"
	clientIPKey     contextKey = "client_ip"
	sessionTokenKey contextKey = "session_token"
)

// UnknownIP is reported when no client address is attached to the context
const UnknownIP = "unknown"

// SetPrincipal adds the authenticated principal to request context
func SetPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipal retrieves the authenticated principal from request context
func GetPrincipal(ctx context.Context) string {
	principal, ok := ctx.Value(principalKey).(string)
	if !ok {
		return "anonymous"
	}
	return principal
}

// SetClientIP adds the caller's address to request context
func SetClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetClientIP retrieves the caller's address from request context
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok && ip != "" {
		return ip
	}
	return UnknownIP
}

// SetSessionToken adds the session token that authorized the request
func SetSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey, token)
}

// GetSessionToken retrieves the session token that authorized the request
func GetSessionToken(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenKey).(string)
	return token
}
