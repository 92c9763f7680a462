package testutil

import (
	"context"
	"time"

	"uims/pkg/requestcontext"
)

// RequestContext returns a context carrying a fixed request time and request
// ID, as the HTTP middleware would set them.
func RequestContext(now time.Time, requestID string) context.Context {
	ctx := requestcontext.WithTime(context.Background(), now)
	return requestcontext.WithRequestID(ctx, requestID)
}
