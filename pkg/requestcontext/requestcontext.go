// Package requestcontext carries request-scoped values (request id, caller
// address, request time) through context without leaking transport types into
// services.
package requestcontext

import (
	"context"
	"time"

	"carbonledger/pkg/domain"
)

type (
	contextKeyRequestID struct{}
	contextKeyPrincipal struct{}
	contextKeyTime      struct{}
	contextKeyClientIP  struct{}
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, id)
}

// RequestID returns the request id or "" outside an HTTP request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID{}).(string)
	return id
}

// WithPrincipal records the authenticated caller address.
func WithPrincipal(ctx context.Context, addr domain.Address) context.Context {
	return context.WithValue(ctx, contextKeyPrincipal{}, addr)
}

// Principal returns the authenticated caller, if any.
func Principal(ctx context.Context) (domain.Address, bool) {
	addr, ok := ctx.Value(contextKeyPrincipal{}).(domain.Address)
	return addr, ok && addr != ""
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKeyClientIP{}, ip)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(contextKeyClientIP{}).(string)
	return ip
}

// WithTime pins "now" for everything downstream of ctx.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyTime{}, t)
}

// Now returns the request-scoped time, falling back to time.Now() for
// workers, jobs and tests.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyTime{}).(time.Time); ok {
		return t
	}
	return time.Now()
}
