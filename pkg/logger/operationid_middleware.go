package logger

import (
	"context"
	"net/http"

	"github.com/rs/xid"
)

type operationIDKey int

const (
	// OpIDKey is the context key under which the per-request operation ID is stored
	OpIDKey operationIDKey = iota

	// OpIDHeader is returned on every response so clients can quote the operation ID in bug reports
	OpIDHeader string = "X-Operation-ID"
)

// OperationIDMiddleware sets a relatively unique operation ID in the context of
// each request for debugging purposes
func OperationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithOpID(r.Context())
		w.Header().Set(OpIDHeader, GetOperationID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithOpID returns a context with a new operation ID stored in it, unless one is already present.
func WithOpID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(OpIDKey).(string); ok {
		return ctx
	}
	return context.WithValue(ctx, OpIDKey, xid.New().String())
}

// GetOperationID returns the operation ID stored in the context, or an empty string.
func GetOperationID(ctx context.Context) string {
	opid, ok := ctx.Value(OpIDKey).(string)
	if !ok {
		return ""
	}
	return opid
}
