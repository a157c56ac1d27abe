package client

import "context"

// WithCorrelationID returns a context carrying an ID that outbound API
// requests attach as the X-Correlation-ID header. The shell generates one
// per city lookup so a user-visible failure can be matched to log lines.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, "correlation_id", id)
}

func extractCorrelationID(ctx context.Context) string {
	if v := ctx.Value("correlation_id"); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
