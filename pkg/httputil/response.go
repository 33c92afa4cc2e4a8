// Package httputil はHTTPレスポンス生成のユーティリティを提供する。
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse はエラーレスポンスの形式。
// Reference はサーバーログと突き合わせるための識別子で、内部情報は含めない。
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}

// JSON はJSONレスポンスを返す。
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// ヘッダーは送信済みのためログ出力のみ
			slog.Error("failed to encode response", "status", status, "error", err)
		}
	}
}

// Error はエラーレスポンスを返す。
func Error(w http.ResponseWriter, status int, code string, message string) {
	JSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// InternalError は参照IDのみを含む500レスポンスを返す。
func InternalError(w http.ResponseWriter, reference string) {
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Code:      "INTERNAL_ERROR",
		Message:   "internal server error",
		Reference: reference,
	})
}
