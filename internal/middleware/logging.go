// Package middleware はHTTPミドルウェアと監査ログを提供する。
package middleware

import (
	"context"
	"log/slog"
	"time"
)

// 監査ログの結果区分。
const (
	ResultSuccess  = "SUCCESS"
	ResultRejected = "REJECTED"
	ResultFailed   = "FAILED"
)

// WriteAuditLog は監査ログを出力する。認証拒否は想定内のトラフィックなのでINFOで出力する。
func WriteAuditLog(ctx context.Context, operation, username, credentialID, result string) {
	level := slog.LevelInfo
	if result == ResultFailed {
		level = slog.LevelWarn
	}
	slog.Log(ctx, level, "credential operation completed",
		"operation", operation,
		"username", username,
		"credential_id", credentialID,
		"result", result,
		"timestamp", time.Now().UTC().Format(time.RFC3339),
	)
}
