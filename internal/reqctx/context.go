package reqctx

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const keyRID ctxKey = "request_id"

// WithRID stores the request correlation id.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// Logger returns the global zap logger tagged with the request id, if any.
func Logger(ctx context.Context) *zap.Logger {
	l := zap.L()
	if rid := RID(ctx); rid != "" {
		return l.With(zap.String("request_id", rid))
	}
	return l
}
