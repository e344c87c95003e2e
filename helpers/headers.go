package helpers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

// HeaderRequestID is the HTTP header and gRPC metadata key that correlates one SSE subscription across services.
const HeaderRequestID = "x-request-id"

// GetHeaderValue returns the first non-empty value of key in md. The key is lowercased because gRPC canonicalizes
// metadata keys. Returns ("", false) for nil md, empty key or missing/empty value.
//
// Called from the account gRPC stream handler when reading the request id of a bridged subscription.
func GetHeaderValue(md metadata.MD, key string) (string, bool) {
	if md == nil || key == "" {
		return "", false
	}
	vals := md.Get(strings.ToLower(key))
	if len(vals) == 0 || vals[0] == "" {
		return "", false
	}
	return vals[0], true
}

// RequestIDOrNew returns id trimmed, or a fresh random UUID when id is blank.
func RequestIDOrNew(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// WithOutgoingRequestID appends the request id to the outgoing gRPC metadata of ctx. Blank ids leave ctx untouched.
//
// Called from service.RemoteProducer before opening the backend stream.
func WithOutgoingRequestID(ctx context.Context, id string) context.Context {
	if strings.TrimSpace(id) == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, HeaderRequestID, id)
}

type requestIDKey struct{}

// ContextWithRequestID stores the request id in ctx so it survives into producers that only receive a context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
