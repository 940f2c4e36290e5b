package middlewares

import "context"

const serviceKey ctxKey = 1

func WithService(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, serviceKey, subject)
}

// ServiceFrom returns the authenticated calling service, if any.
func ServiceFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(serviceKey).(string)
	return v, ok && v != ""
}
