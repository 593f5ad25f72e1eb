package common

import "context"

// RequestContext holds per-request values set by the HTTP middleware.
type RequestContext struct {
	CorrelationID string
}

type contextKey int

const requestContextKey contextKey = iota

// WithRequestContext stores a RequestContext in the context.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// RequestContextFromContext retrieves the RequestContext, or nil if absent.
func RequestContextFromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey).(*RequestContext)
	return rc
}

// CorrelationID returns the request correlation ID, or "" outside a request.
func CorrelationID(ctx context.Context) string {
	if rc := RequestContextFromContext(ctx); rc != nil {
		return rc.CorrelationID
	}
	return ""
}
