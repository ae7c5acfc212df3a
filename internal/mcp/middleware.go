package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware logs every incoming request with its duration. Tool
// calls add the tool name. Arguments are never logged: they may carry user
// tokens.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			res, err := next(ctx, method, req)

			attrs := make([]slog.Attr, 0, 4)
			attrs = append(attrs,
				slog.String("method", method),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				attrs = append(attrs, slog.String("tool", call.Params.Name))
			}

			level, msg := slog.LevelDebug, "request handled"
			switch {
			case err != nil:
				level, msg = slog.LevelError, "request failed"
				attrs = append(attrs, slog.String("error", err.Error()))
			case method == "tools/call":
				// Tool calls are the interesting traffic; list and ping
				// requests stay at debug.
				level = slog.LevelInfo
			}
			slog.LogAttrs(ctx, level, msg, attrs...)

			return res, err
		}
	}
}
